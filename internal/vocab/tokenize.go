package vocab

import (
	"iter"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Word characters: letters, digits and underscore in any script.
var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenize lower-cases text and yields its maximal runs of word characters in
// input order. Lower-casing happens before matching, so a rune that lowers to
// a non-word character (İ becomes i plus a combining dot) splits the token.
// The returned sequence can be ranged over more than once.
func Tokenize(text string) iter.Seq[string] {
	return TokenizeBytes([]byte(text))
}

// TokenizeBytes is Tokenize over a byte slice. Yielded tokens never alias b, so
// the slice may be released (or unmapped) once iteration is done.
func TokenizeBytes(b []byte) iter.Seq[string] {
	return func(yield func(string) bool) {
		lower := cases.Lower(language.Und).Bytes(b)
		for pos := 0; pos < len(lower); {
			loc := tokenRe.FindIndex(lower[pos:])
			if loc == nil {
				return
			}
			tok := lower[pos+loc[0] : pos+loc[1]]
			pos += loc[1]
			if !yield(string(tok)) {
				return
			}
		}
	}
}

// Normalize prepares a query word for lookup: surrounding space is dropped and
// the rest lower-cased the same way training tokens are.
func Normalize(word string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(word))
}

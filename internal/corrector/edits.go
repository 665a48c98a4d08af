package corrector

import "iter"

// rawEdits1 yields every string one edit away from word: deletions,
// adjacent transpositions, replacements and insertions, in that order.
// The same string may be yielded more than once. It reports false if yield
// asked to stop.
func rawEdits1(word, alphabet []rune, yield func(string) bool) bool {
	n := len(word)
	buf := make([]rune, 0, n+1)

	for i := 0; i < n; i++ {
		buf = append(append(buf[:0], word[:i]...), word[i+1:]...)
		if !yield(string(buf)) {
			return false
		}
	}
	for i := 0; i+1 < n; i++ {
		buf = append(buf[:0], word...)
		buf[i], buf[i+1] = buf[i+1], buf[i]
		if !yield(string(buf)) {
			return false
		}
	}
	for i := 0; i < n; i++ {
		buf = append(buf[:0], word...)
		for _, c := range alphabet {
			buf[i] = c
			if !yield(string(buf)) {
				return false
			}
		}
	}
	for i := 0; i <= n; i++ {
		for _, c := range alphabet {
			buf = append(append(append(buf[:0], word[:i]...), c), word[i:]...)
			if !yield(string(buf)) {
				return false
			}
		}
	}
	return true
}

// Edits1 returns the set of strings one edit away from word.
func (c *Corrector) Edits1(word string) map[string]struct{} {
	r := []rune(word)
	n, a := len(r), len(c.alphabet)
	out := make(map[string]struct{}, a*n+a*(n+1)+2*n)
	rawEdits1(r, c.alphabet, func(s string) bool {
		out[s] = struct{}{}
		return true
	})
	return out
}

// Edits2 lazily yields the strings two edits away from word. Nothing is
// collected up front; elements may repeat, so callers that need a set must
// deduplicate (usually after filtering against a vocabulary).
func (c *Corrector) Edits2(word string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for e1 := range c.Edits1(word) {
			if !rawEdits1([]rune(e1), c.alphabet, yield) {
				return
			}
		}
	}
}

// Package corpus feeds training text into the vocabulary: it reads corpus
// files, splits token streams for evaluation and measures vocabulary coverage.
package corpus

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"runtime/debug"
	"slices"
	"unicode/utf8"

	"github.com/edsrzf/mmap-go"

	"autocorrect/internal/vocab"
)

var (
	// ErrInvalidUTF8 is returned for corpora that are not UTF-8 text.
	ErrInvalidUTF8 = errors.New("corpus: invalid utf-8")
	// ErrCorpusChanged is returned when the file shrinks while it is mapped.
	ErrCorpusChanged = errors.New("corpus: file changed while reading")
)

// Load memory-maps the file at path and hands its token stream to fn. The
// mapping is released when fn returns, so fn must finish ranging over tokens
// before returning. An empty file yields no tokens. If the file is truncated
// while fn runs, Load returns ErrCorpusChanged instead of crashing.
func Load(path string, fn func(tokens iter.Seq[string]) error) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat corpus: %w", err)
	}
	if info.Size() == 0 {
		return fn(vocab.TokenizeBytes(nil))
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return fmt.Errorf("mmap corpus %s: %w", path, err)
	}
	defer data.Unmap()

	// reads past a truncated end fault; turn them into an error
	defer debug.SetPanicOnFault(debug.SetPanicOnFault(true))
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(interface{ Addr() uintptr }); !ok {
				panic(r)
			}
			err = fmt.Errorf("%s: %w", path, ErrCorpusChanged)
		}
	}()

	if !utf8.Valid(data) {
		return fmt.Errorf("%s: %w", path, ErrInvalidUTF8)
	}
	return fn(vocab.TokenizeBytes(data))
}

// LoadTokens reads every token of the file at path.
func LoadTokens(path string) ([]string, error) {
	var tokens []string
	err := Load(path, func(seq iter.Seq[string]) error {
		tokens = slices.Collect(seq)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

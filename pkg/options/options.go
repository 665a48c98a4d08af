package options

// Alphabet used for replacements and insertions when generating edits.
const Alphabet = "abcdefghijklmnopqrstuvwxyz"

var DefaultOptions = CorrectorOptions{
	TopK:          3,
	MaxWordLength: 0,
	Alphabet:      Alphabet,
}

type CorrectorOptions struct {
	TopK          int    // suggestions returned when the caller passes k <= 0
	MaxWordLength int    // words longer than this (in runes) skip edit search; 0 disables
	Alphabet      string // letters tried by replacement and insertion edits
}

type Options interface {
	Apply(options *CorrectorOptions)
}

type FuncConfig struct {
	ops func(options *CorrectorOptions)
}

func (w FuncConfig) Apply(conf *CorrectorOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *CorrectorOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

func WithTopK(k int) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		if k > 0 {
			options.TopK = k
		}
	})
}

func WithMaxWordLength(n int) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		if n >= 0 {
			options.MaxWordLength = n
		}
	})
}

// WithAlphabet replaces the edit alphabet. An empty alphabet is ignored.
func WithAlphabet(letters string) Options {
	return NewFuncOption(func(options *CorrectorOptions) {
		if letters != "" {
			options.Alphabet = letters
		}
	})
}

// Resolve applies opts over DefaultOptions.
func Resolve(opts ...Options) CorrectorOptions {
	conf := DefaultOptions
	for _, o := range opts {
		if o != nil {
			o.Apply(&conf)
		}
	}
	return conf
}

// Package corrector proposes in-vocabulary replacements for a misspelled word
// by searching outward one edit at a time and ranking hits by frequency.
package corrector

import (
	"cmp"
	"iter"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"autocorrect/internal/vocab"
	"autocorrect/pkg/options"
)

type Corrector struct {
	config   options.CorrectorOptions
	alphabet []rune
}

func New(opts ...options.Options) *Corrector {
	conf := options.Resolve(opts...)
	return &Corrector{config: conf, alphabet: []rune(conf.Alphabet)}
}

// Config returns the resolved options.
func (c *Corrector) Config() options.CorrectorOptions {
	return c.config
}

// Candidates returns the pool of the first search tier that finds anything:
// the word itself, known words one edit away, then known words two edits
// away. The pool is unordered. TierNone comes with an empty pool.
func (c *Corrector) Candidates(word string, m *vocab.Model) ([]string, Tier) {
	if word == "" {
		return nil, TierNone
	}
	if m.Contains(word) {
		return []string{word}, TierExact
	}
	if c.config.MaxWordLength > 0 && utf8.RuneCountInString(word) > c.config.MaxWordLength {
		return nil, TierNone
	}
	if pool := known(maps.Keys(c.Edits1(word)), m); len(pool) > 0 {
		return pool, TierEdit1
	}
	if pool := known(c.Edits2(word), m); len(pool) > 0 {
		return pool, TierEdit2
	}
	return nil, TierNone
}

// Correct returns at most k candidates for word, best first. A known word
// comes back alone with score 1; a word with no known neighbour within two
// edits comes back alone with score 0. k <= 0 selects the configured TopK.
// Equal scores are ordered alphabetically.
func (c *Corrector) Correct(word string, m *vocab.Model, k int) []Candidate {
	if k <= 0 {
		k = c.config.TopK
	}
	pool, tier := c.Candidates(word, m)
	switch tier {
	case TierExact:
		return []Candidate{{Term: word, Score: 1.0, Tier: TierExact}}
	case TierNone:
		return []Candidate{{Term: word, Score: 0, Tier: TierNone}}
	}

	ranked := make([]Candidate, 0, len(pool))
	for _, w := range pool {
		ranked = append(ranked, Candidate{Term: w, Score: m.Probability(w), Tier: tier})
	}
	slices.SortFunc(ranked, func(a, b Candidate) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}
		return strings.Compare(a.Term, b.Term)
	})
	return ranked[:min(k, len(ranked))]
}

// Best is the single most likely correction of word.
func (c *Corrector) Best(word string, m *vocab.Model) Candidate {
	return c.Correct(word, m, 1)[0]
}

// known keeps the distinct elements of words present in m.
func known(words iter.Seq[string], m *vocab.Model) []string {
	seen := make(map[string]struct{})
	var out []string
	for w := range words {
		if !m.Contains(w) {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

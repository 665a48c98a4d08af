// Package vocab holds the trained vocabulary: distinct tokens of a corpus and
// how often each one occurred.
package vocab

import (
	"errors"
	"iter"
	"maps"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyCorpus is returned when training sees no tokens at all.
var ErrEmptyCorpus = errors.New("vocab: empty corpus")

// Model is an immutable unigram frequency table. A nil *Model behaves as an
// untrained, empty vocabulary.
type Model struct {
	id          uuid.UUID
	trainedAt   time.Time
	frequencies map[string]int
	total       int
}

// Train counts tokens into a fresh Model.
func Train(tokens iter.Seq[string]) (*Model, error) {
	freq := make(map[string]int)
	total := 0
	for tok := range tokens {
		freq[tok]++
		total++
	}
	if total == 0 {
		return nil, ErrEmptyCorpus
	}
	return &Model{
		id:          uuid.New(),
		trainedAt:   time.Now(),
		frequencies: freq,
		total:       total,
	}, nil
}

// ID identifies the training pass that produced m.
func (m *Model) ID() string {
	if m == nil {
		return ""
	}
	return m.id.String()
}

func (m *Model) TrainedAt() time.Time {
	if m == nil {
		return time.Time{}
	}
	return m.trainedAt
}

// Contains reports whether word was seen during training.
func (m *Model) Contains(word string) bool {
	if m == nil {
		return false
	}
	_, ok := m.frequencies[word]
	return ok
}

// Count returns the number of occurrences of word.
func (m *Model) Count(word string) int {
	if m == nil {
		return 0
	}
	return m.frequencies[word]
}

// Probability returns the relative frequency of word, 0 for unknown words.
func (m *Model) Probability(word string) float64 {
	if m == nil || m.total == 0 {
		return 0
	}
	return float64(m.frequencies[word]) / float64(m.total)
}

// Total is the number of tokens the model was trained on, repeats included.
func (m *Model) Total() int {
	if m == nil {
		return 0
	}
	return m.total
}

// Len is the vocabulary size.
func (m *Model) Len() int {
	if m == nil {
		return 0
	}
	return len(m.frequencies)
}

// Words yields every distinct token in no particular order.
func (m *Model) Words() iter.Seq[string] {
	if m == nil {
		return func(func(string) bool) {}
	}
	return maps.Keys(m.frequencies)
}

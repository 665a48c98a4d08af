package vocab

import (
	"iter"
	"sync/atomic"
)

// Store is a swappable handle to the current Model. Readers always observe
// either the previous model or the complete new one.
type Store struct {
	cur atomic.Pointer[Model]
}

func NewStore() *Store {
	return &Store{}
}

// Load returns the current model, nil before the first successful training.
func (s *Store) Load() *Model {
	return s.cur.Load()
}

func (s *Store) IsTrained() bool {
	return s.cur.Load() != nil
}

// Train builds a model from tokens and publishes it. On error the current
// model stays in place.
func (s *Store) Train(tokens iter.Seq[string]) (*Model, error) {
	m, err := Train(tokens)
	if err != nil {
		return nil, err
	}
	s.cur.Store(m)
	return m, nil
}

// Swap publishes m and returns the model it replaced.
func (s *Store) Swap(m *Model) *Model {
	return s.cur.Swap(m)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"go.uber.org/zap"

	"autocorrect/internal/corpus"
	"autocorrect/internal/corrector"
	"autocorrect/internal/vocab"
)

var (
	ErrNotTrained = errors.New("model not trained yet")
	ErrEmptyQuery = errors.New("empty word")
)

// SuggestionCache stores ranked corrections per model.
type SuggestionCache interface {
	Get(ctx context.Context, modelID, word string, k int) ([]corrector.Candidate, bool, error)
	Set(ctx context.Context, modelID, word string, k int, cands []corrector.Candidate) error
}

// Speller owns the live vocabulary and answers correction queries against
// whichever model is current when the query starts.
type Speller struct {
	store     *vocab.Store
	corrector *corrector.Corrector
	cache     SuggestionCache
	logger    *zap.Logger
}

// NewSpeller wires a Speller. cache may be nil.
func NewSpeller(c *corrector.Corrector, cache SuggestionCache, logger *zap.Logger) *Speller {
	return &Speller{
		store:     vocab.NewStore(),
		corrector: c,
		cache:     cache,
		logger:    logger,
	}
}

type Stats struct {
	Trained    bool      `json:"trained"`
	ModelID    string    `json:"model_id,omitempty"`
	VocabSize  int       `json:"vocab_size"`
	TotalCount int       `json:"total_count"`
	TrainedAt  time.Time `json:"trained_at,omitempty"`
}

// Train replaces the current model with one built from tokens. On
// vocab.ErrEmptyCorpus the current model is kept.
func (s *Speller) Train(tokens iter.Seq[string]) (*vocab.Model, error) {
	start := time.Now()
	m, err := s.store.Train(tokens)
	if err != nil {
		s.logger.Warn("Training rejected", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Model trained",
		zap.String("model_id", m.ID()),
		zap.Int("vocab_size", m.Len()),
		zap.Int("total_count", m.Total()),
		zap.Duration("took", time.Since(start)))
	return m, nil
}

// TrainFile trains on the corpus file at path.
func (s *Speller) TrainFile(path string) (*vocab.Model, error) {
	var m *vocab.Model
	err := corpus.Load(path, func(tokens iter.Seq[string]) error {
		var err error
		m, err = s.Train(tokens)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("train from %s: %w", path, err)
	}
	return m, nil
}

// Model returns the current model, nil when untrained.
func (s *Speller) Model() *vocab.Model {
	return s.store.Load()
}

func (s *Speller) IsTrained() bool {
	return s.store.IsTrained()
}

// Correct normalizes word and returns up to k ranked corrections. k <= 0
// selects the corrector's default.
func (s *Speller) Correct(ctx context.Context, word string, k int) ([]corrector.Candidate, error) {
	m := s.store.Load()
	if m == nil {
		return nil, ErrNotTrained
	}
	w := vocab.Normalize(word)
	if w == "" {
		return nil, ErrEmptyQuery
	}
	if k <= 0 {
		k = s.corrector.Config().TopK
	}

	if s.cache != nil {
		cands, ok, err := s.cache.Get(ctx, m.ID(), w, k)
		if err != nil {
			s.logger.Warn("Suggestion cache lookup failed", zap.String("word", w), zap.Error(err))
		} else if ok {
			return cands, nil
		}
	}

	cands := s.corrector.Correct(w, m, k)

	if s.cache != nil {
		if err := s.cache.Set(ctx, m.ID(), w, k, cands); err != nil {
			s.logger.Warn("Suggestion cache store failed", zap.String("word", w), zap.Error(err))
		}
	}
	return cands, nil
}

// Best returns the single most likely correction of word.
func (s *Speller) Best(ctx context.Context, word string) (corrector.Candidate, error) {
	cands, err := s.Correct(ctx, word, 1)
	if err != nil {
		return corrector.Candidate{}, err
	}
	return cands[0], nil
}

func (s *Speller) Contains(word string) bool {
	return s.store.Load().Contains(vocab.Normalize(word))
}

func (s *Speller) Probability(word string) float64 {
	return s.store.Load().Probability(vocab.Normalize(word))
}

// Coverage reports how much of heldOut the current model knows.
func (s *Speller) Coverage(heldOut []string, sampleSize int) (corpus.CoverageReport, error) {
	m := s.store.Load()
	if m == nil {
		return corpus.CoverageReport{}, ErrNotTrained
	}
	return corpus.Coverage(m, heldOut, sampleSize), nil
}

func (s *Speller) Stats() Stats {
	m := s.store.Load()
	if m == nil {
		return Stats{}
	}
	return Stats{
		Trained:    true,
		ModelID:    m.ID(),
		VocabSize:  m.Len(),
		TotalCount: m.Total(),
		TrainedAt:  m.TrainedAt(),
	}
}

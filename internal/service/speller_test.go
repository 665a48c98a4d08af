package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"autocorrect/internal/corrector"
	"autocorrect/internal/vocab"
)

type memCache struct {
	mu      sync.Mutex
	entries map[string][]corrector.Candidate
	gets    int
	failGet bool
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]corrector.Candidate{}}
}

func (c *memCache) key(modelID, word string, k int) string {
	return fmt.Sprintf("%s|%s|%d", modelID, word, k)
}

func (c *memCache) Get(_ context.Context, modelID, word string, k int) ([]corrector.Candidate, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.failGet {
		return nil, false, errors.New("cache down")
	}
	v, ok := c.entries[c.key(modelID, word, k)]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, modelID, word string, k int, cands []corrector.Candidate) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.key(modelID, word, k)] = cands
	return nil
}

func newTestSpeller(t *testing.T, cache SuggestionCache) *Speller {
	t.Helper()
	return NewSpeller(corrector.New(), cache, zap.NewNop())
}

func trainFox(t *testing.T, s *Speller) *vocab.Model {
	t.Helper()
	m, err := s.Train(vocab.Tokenize("the quick brown fox the the"))
	require.NoError(t, err)
	return m
}

func TestSpeller_NotTrained(t *testing.T) {
	s := newTestSpeller(t, nil)
	assert.False(t, s.IsTrained())
	_, err := s.Correct(context.Background(), "teh", 3)
	assert.ErrorIs(t, err, ErrNotTrained)
	_, err = s.Coverage([]string{"a"}, 10)
	assert.ErrorIs(t, err, ErrNotTrained)
	assert.Equal(t, Stats{}, s.Stats())
}

func TestSpeller_EmptyQuery(t *testing.T) {
	s := newTestSpeller(t, nil)
	trainFox(t, s)
	for _, w := range []string{"", "   ", "\t\n"} {
		_, err := s.Correct(context.Background(), w, 3)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	}
}

func TestSpeller_Correct(t *testing.T) {
	s := newTestSpeller(t, nil)
	trainFox(t, s)
	ctx := context.Background()

	got, err := s.Correct(ctx, "  TEH ", 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "the", got[0].Term)
	assert.InDelta(t, 0.5, got[0].Score, 1e-12)

	got, err = s.Correct(ctx, "Fox", 0)
	require.NoError(t, err)
	assert.Equal(t, []corrector.Candidate{{Term: "fox", Score: 1, Tier: corrector.TierExact}}, got)

	best, err := s.Best(ctx, "zzzzz")
	require.NoError(t, err)
	assert.Equal(t, corrector.Candidate{Term: "zzzzz", Tier: corrector.TierNone}, best)
}

func TestSpeller_EmptyCorpusKeepsModel(t *testing.T) {
	s := newTestSpeller(t, nil)
	m := trainFox(t, s)

	_, err := s.Train(slices.Values([]string{}))
	assert.ErrorIs(t, err, vocab.ErrEmptyCorpus)
	assert.Same(t, m, s.Model())
	assert.True(t, s.Contains("fox"))
	assert.InDelta(t, 0.5, s.Probability("THE"), 1e-12)
}

func TestSpeller_TrainFile(t *testing.T) {
	s := newTestSpeller(t, nil)
	path := filepath.Join(t.TempDir(), "final.txt")
	require.NoError(t, os.WriteFile(path, []byte("Hello hello world"), 0o644))

	m, err := s.TrainFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Total())

	st := s.Stats()
	assert.True(t, st.Trained)
	assert.Equal(t, m.ID(), st.ModelID)
	assert.Equal(t, 2, st.VocabSize)
	assert.Equal(t, 3, st.TotalCount)

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = s.TrainFile(empty)
	assert.ErrorIs(t, err, vocab.ErrEmptyCorpus)
	assert.Same(t, m, s.Model())
}

func TestSpeller_UsesCache(t *testing.T) {
	cache := newMemCache()
	s := newTestSpeller(t, cache)
	m := trainFox(t, s)
	ctx := context.Background()

	// seed a sentinel to prove the cached value is served
	cache.entries[cache.key(m.ID(), "teh", 3)] = []corrector.Candidate{{Term: "cached"}}
	got, err := s.Correct(ctx, "teh", 3)
	require.NoError(t, err)
	assert.Equal(t, "cached", got[0].Term)

	got, err = s.Correct(ctx, "quack", 3)
	require.NoError(t, err)
	assert.Equal(t, "quick", got[0].Term)
	assert.Contains(t, cache.entries, cache.key(m.ID(), "quack", 3))
}

func TestSpeller_RetrainInvalidatesCache(t *testing.T) {
	cache := newMemCache()
	s := newTestSpeller(t, cache)
	trainFox(t, s)
	ctx := context.Background()

	got, err := s.Correct(ctx, "teh", 3)
	require.NoError(t, err)
	assert.Equal(t, "the", got[0].Term)

	_, err = s.Train(vocab.Tokenize("ten ten ten"))
	require.NoError(t, err)
	got, err = s.Correct(ctx, "teh", 3)
	require.NoError(t, err)
	assert.Equal(t, "ten", got[0].Term)
}

func TestSpeller_CacheFailureFallsThrough(t *testing.T) {
	cache := newMemCache()
	cache.failGet = true
	s := newTestSpeller(t, cache)
	trainFox(t, s)

	got, err := s.Correct(context.Background(), "teh", 3)
	require.NoError(t, err)
	assert.Equal(t, "the", got[0].Term)
	assert.Equal(t, 1, cache.gets)
}

func TestSpeller_Coverage(t *testing.T) {
	s := newTestSpeller(t, nil)
	trainFox(t, s)
	r, err := s.Coverage([]string{"the", "fox", "cat", "dog"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, r.SampleSize)
	assert.Equal(t, 2, r.Known)
	assert.InDelta(t, 50.0, r.Accuracy, 1e-9)
}

func TestSpeller_ConcurrentCorrectAndTrain(t *testing.T) {
	s := newTestSpeller(t, nil)
	trainFox(t, s)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got, err := s.Correct(ctx, "teh", 3)
				assert.NoError(t, err)
				assert.Len(t, got, 1)
			}
		}()
	}
	for i := 0; i < 20; i++ {
		_, err := s.Train(vocab.Tokenize("the quick brown fox the the"))
		require.NoError(t, err)
	}
	wg.Wait()
}

package suggestcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"autocorrect/internal/corrector"
)

const keyPrefix = "correct"

// Cache keeps ranked corrections in Redis. Entries are scoped to the model
// that produced them, so retraining never serves stale suggestions.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a Cache with the provided Redis client. A ttl of 0 keeps
// entries until Redis evicts them.
func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Key builds the Redis key for a query.
func Key(modelID, word string, k int) string {
	return keyPrefix + ":" + modelID + ":" + strconv.Itoa(k) + ":" + word
}

// Get looks up cached corrections. A miss is not an error.
func (c *Cache) Get(ctx context.Context, modelID, word string, k int) ([]corrector.Candidate, bool, error) {
	raw, err := c.client.Get(ctx, Key(modelID, word, k)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var cands []corrector.Candidate
	if err := json.Unmarshal(raw, &cands); err != nil {
		return nil, false, fmt.Errorf("decode cached suggestions: %w", err)
	}
	return cands, true, nil
}

// Set stores corrections for a query.
func (c *Cache) Set(ctx context.Context, modelID, word string, k int, cands []corrector.Candidate) error {
	raw, err := json.Marshal(cands)
	if err != nil {
		return fmt.Errorf("encode suggestions: %w", err)
	}
	return c.client.Set(ctx, Key(modelID, word, k), raw, c.ttl).Err()
}

// Ping checks the connection.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}

package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/ledgerclient/internal/usecase"
)

// CacheRecorder observes cache outcomes.
type CacheRecorder interface {
	CacheResult(operation, result string)
}

// Cache implements usecase.Cache using Redis.
type Cache struct {
	client   *redis.Client
	prefix   string
	recorder CacheRecorder
}

// NewCache creates a new Cache. recorder may be nil.
func NewCache(client *redis.Client, recorder CacheRecorder) *Cache {
	return &Cache{
		client:   client,
		prefix:   "ledgerclient:",
		recorder: recorder,
	}
}

// Get retrieves a value by key. A missing key yields usecase.ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		c.record("get", "miss")
		return nil, usecase.ErrCacheMiss
	case err != nil:
		c.record("get", "error")
		return nil, err
	}
	c.record("get", "hit")
	return val, nil
}

// Set stores a value with TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := c.client.Set(ctx, c.prefix+key, value, ttl).Err()
	c.record("set", result(err))
	return err
}

// Delete removes a key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	err := c.client.Del(ctx, c.prefix+key).Err()
	c.record("delete", result(err))
	return err
}

func (c *Cache) record(operation, outcome string) {
	if c.recorder != nil {
		c.recorder.CacheResult(operation, outcome)
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

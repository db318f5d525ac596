package redis

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// Cache implements usecase.Cache using Redis.
type Cache struct {
	client *redis.Client
	prefix string
	hits   prometheus.Counter
	misses prometheus.Counter
}

// NewCache creates a new Cache. Lookups are counted against the given
// hit and miss counters.
func NewCache(client *redis.Client, hits, misses prometheus.Counter) *Cache {
	return &Cache{
		client: client,
		prefix: "paymint:",
		hits:   hits,
		misses: misses,
	}
}

// Get retrieves a value by key. A missing key returns redis.Nil, which
// callers treat as a cache miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	switch {
	case err == nil:
		c.hits.Inc()
	case errors.Is(err, redis.Nil):
		c.misses.Inc()
	}

	return val, err
}

// Set stores a value with TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// Delete removes a key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}

// Package cache provides a TTL cache for derived reading data.
//
// Statistics, streaks, and heatmaps are recomputed from the full session
// history on every miss; the cache keeps those aggregations off the hot
// path and is invalidated whenever the underlying data changes.
package cache

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Cache wraps a TTL store keyed by string. Values are stored as any and
// type-asserted on the way out by GetOrCompute.
type Cache struct {
	inner  *ttlcache.Cache[string, any]
	logger *slog.Logger
}

// New creates a cache and starts its expiration janitor.
func New(logger *slog.Logger) *Cache {
	inner := ttlcache.New[string, any](
		ttlcache.WithDisableTouchOnHit[string, any](),
	)
	go inner.Start()
	return &Cache{inner: inner, logger: logger}
}

// Close stops the expiration janitor.
func (c *Cache) Close() error {
	c.inner.Stop()
	return nil
}

// Get returns the cached value for key, if present and unexpired.
func (c *Cache) Get(key string) (any, bool) {
	item := c.inner.Get(key)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

// Set stores value under key with the given TTL. A non-positive TTL falls
// back to the cache default (no expiration).
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	c.inner.Set(key, value, ttl)
}

// Remove evicts a single key.
func (c *Cache) Remove(key string) {
	c.inner.Delete(key)
}

// RemoveByPrefix evicts every currently-tracked key starting with prefix.
func (c *Cache) RemoveByPrefix(prefix string) {
	for _, key := range c.inner.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.inner.Delete(key)
		}
	}
}

// GetOrCompute returns the cached value for key, computing and storing it
// on a miss. Compute errors are returned without caching, so the next call
// retries.
func GetOrCompute[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, compute func(ctx context.Context) (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
		// A type mismatch means the key is being reused; drop it.
		c.logger.Warn("cache value type mismatch, evicting", "key", key)
		c.Remove(key)
	}

	value, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.Set(key, value, ttl)
	return value, nil
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/jamkick/jamkick/pkg/observability"
)

// Key templates for every memoized operation. These are wire formats: a
// pre-existing cache population keyed this way must stay readable, so the
// templates never change shape.
const (
	KeyLocation     = "location:%s"
	KeyJams         = "jams:%s"
	KeyLikes        = "likes:%s"
	KeyArtistEvents = "artist_events:%s:%d:%s"
)

// Cache memoizes expensive calls in Redis. A nil *Cache is valid and
// disables memoization, so callers never need to branch on whether a cache
// was configured.
type Cache struct {
	client *redis.Client
	log    logrus.FieldLogger
}

// New creates a cache gateway backed by the given Redis client
func New(client *redis.Client, log logrus.FieldLogger) *Cache {
	return &Cache{
		client: client,
		log:    log.WithField("service", "cache"),
	}
}

// Key builds a cache key by substituting args positionally into a key template.
func Key(template string, args ...any) string {
	return fmt.Sprintf(template, args...)
}

// Cached returns the memoized value for key, computing and storing it via
// fetch on a miss. A ttl of zero means the entry never expires. Fetch
// failures propagate uncached. An unreachable store degrades to a direct
// fetch instead of failing the request. Concurrent misses for the same key
// both fetch and the last write wins; fetches are idempotent per key within
// the TTL window, so no single-flight de-duplication is attempted.
func Cached[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	if c == nil || c.client == nil {
		return fetch(ctx)
	}

	data, err := c.client.Get(ctx, key).Bytes()

	switch {
	case err == nil:
		var value T
		if decodeErr := json.Unmarshal(data, &value); decodeErr == nil {
			observability.CacheOperations.WithLabelValues("get", "hit").Inc()
			return value, nil
		}

		// Undecodable entry, treat as a miss and overwrite it below.
		c.log.WithField("key", key).Warn("Discarding undecodable cache entry")
		observability.CacheOperations.WithLabelValues("get", "miss").Inc()
	case errors.Is(err, redis.Nil):
		observability.CacheOperations.WithLabelValues("get", "miss").Inc()
	default:
		observability.CacheOperations.WithLabelValues("get", "error").Inc()
		c.log.WithError(err).WithField("key", key).Warn("Cache read failed, falling back to direct call")
	}

	value, err := fetch(ctx)
	if err != nil {
		return zero, err
	}

	data, err = json.Marshal(value)
	if err != nil {
		return zero, fmt.Errorf("failed to encode cache entry %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		observability.CacheOperations.WithLabelValues("set", "error").Inc()
		c.log.WithError(err).WithField("key", key).Warn("Cache write failed")

		return value, nil
	}

	observability.CacheOperations.WithLabelValues("set", "ok").Inc()

	return value, nil
}

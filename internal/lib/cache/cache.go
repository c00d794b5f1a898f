// Package cache is a JSON read-through cache on Redis.
//
// Redis is an optimization only: read and write failures are logged and the
// loader result is returned as if the cache were absent.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/skillhub/internal/metrics"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const keyPrefix = "skillhub:"

// SkillKey is the cache key of one skill.
func SkillKey(id int) string {
	return fmt.Sprintf("%sskill:%d", keyPrefix, id)
}

// Cache is a JSON read-through cache over redis.
type Cache struct {
	client *redis.Client
	logger *zerolog.Logger
}

// New returns a cache backed by client. A nil client disables caching.
func New(client *redis.Client, logger *zerolog.Logger) *Cache {
	return &Cache{client: client, logger: logger}
}

// ReadThrough returns the cached value at key, or calls load, stores its
// result for ttl, and returns it. Loader errors are returned unchanged and
// nothing is cached.
func ReadThrough[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, load func(ctx context.Context) (*T, error)) (*T, error) {
	if c == nil || c.client == nil {
		return load(ctx)
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			metrics.RecordCacheHit()
			return &v, nil
		}
		c.logger.Warn().Str("key", key).Msg("discarding undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		c.logger.Error().Err(err).Str("key", key).Msg("cache read failed")
	}

	metrics.RecordCacheMiss()

	v, err := load(ctx)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(v)
	if err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("cache encode failed")
		return v, nil
	}
	if err := c.client.Set(ctx, key, encoded, ttl).Err(); err != nil {
		c.logger.Error().Err(err).Str("key", key).Msg("cache write failed")
	}
	return v, nil
}

// Invalidate drops keys. Failures are logged; a stale entry expires with its ttl.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Error().Err(err).Strs("keys", keys).Msg("cache invalidation failed")
	}
}

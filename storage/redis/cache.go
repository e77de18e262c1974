package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/courati/console/core"
)

const cacheKeyPrefix = "query:"

// QueryCache stores read query results as JSON under a short TTL; mutations
// invalidate by key prefix via SCAN+DEL.
type QueryCache struct {
	client *redis.Client
}

var _ core.QueryCache = (*QueryCache)(nil)

func NewQueryCache(client *redis.Client) *QueryCache {
	return &QueryCache{client: client}
}

func (c *QueryCache) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	data, err := c.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "reading cache")
	}
	if err := json.Unmarshal(data, out); err != nil {
		// stale shape from an older build; treat as a miss
		_ = c.client.Del(ctx, cacheKeyPrefix+key).Err()
		return false, nil
	}
	return true, nil
}

func (c *QueryCache) Set(ctx context.Context, key string, val interface{}, ttl time.Duration) error {
	data, err := json.Marshal(val)
	if err != nil {
		return errors.Wrap(err, "marshalling cache value")
	}
	return errors.Wrap(c.client.Set(ctx, cacheKeyPrefix+key, data, ttl).Err(), "writing cache")
}

func (c *QueryCache) Invalidate(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, cacheKeyPrefix+prefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return errors.Wrap(err, "scanning cache keys")
	}
	if len(keys) == 0 {
		return nil
	}
	return errors.Wrap(c.client.Del(ctx, keys...).Err(), "invalidating cache keys")
}

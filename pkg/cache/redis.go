package cache

import (
	"context"
	"time"
)

// KV is the subset of the Redis client the cache needs.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache stores responses in Redis so every API replica shares them.
type RedisCache struct {
	kv KV
}

func NewRedisCache(kv KV) *RedisCache {
	return &RedisCache{kv: kv}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.kv.Get(ctx, key)
}

func (c *RedisCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	return c.kv.Set(ctx, key, body, ttl)
}

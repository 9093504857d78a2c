package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores simplifications keyed by model and input text.
// Keys look like "simplify:<model>:<sha256(text)>" and expire after ttl.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache creates a cache scoped to modelName so that outputs of
// different models never collide.
func NewRedisCache(client *redis.Client, modelName string, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisCache{client: client, prefix: "simplify:" + modelName + ":", ttl: ttl}
}

func (c *RedisCache) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return c.prefix + hex.EncodeToString(sum[:])
}

// Get returns the cached simplification for text. ok is false on a miss.
func (c *RedisCache) Get(ctx context.Context, text string) (string, bool, error) {
	v, err := c.client.Get(ctx, c.key(text)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

func (c *RedisCache) Set(ctx context.Context, text, simplified string) error {
	return c.client.Set(ctx, c.key(text), simplified, c.ttl).Err()
}

// Ping checks the connection, used for readiness.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "homebook:session:"

// RedisKV persists session keys in Redis under "homebook:session:<namespace>:<key>".
// The namespace separates devices or users sharing one Redis instance.
// Keys never expire; Store.Clear removes them.
type RedisKV struct {
	client    *redis.Client
	namespace string
}

// NewRedisKV returns a RedisKV using client (see cache.RedisClient.Client()).
func NewRedisKV(client *redis.Client, namespace string) *RedisKV {
	return &RedisKV{client: client, namespace: namespace}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis session get: %w", err)
	}
	return v, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis session set: %w", err)
	}
	return nil
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis session delete: %w", err)
	}
	return nil
}

func (r *RedisKV) key(k string) string {
	if r.namespace == "" {
		return redisKeyPrefix + k
	}
	return redisKeyPrefix + r.namespace + ":" + k
}

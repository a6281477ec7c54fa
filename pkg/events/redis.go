package events

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "signalist:event:"

// RedisDeduplicator keeps claimed keys in redis, expiring after ttl
type RedisDeduplicator struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDeduplicator connects to redis and checks the connection
func NewRedisDeduplicator(ctx context.Context, opts *redis.Options, ttl time.Duration) (*RedisDeduplicator, error) {
	client := redis.NewClient(opts)
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis %s: %w", opts.Addr, err)
	}
	return &RedisDeduplicator{client: client, ttl: ttl}, nil
}

// Claim sets the key if it is not set yet
func (r *RedisDeduplicator) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := r.client.SetNX(ctx, redisKeyPrefix+key, time.Now().Unix(), r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim %s: %w", key, err)
	}
	return ok, nil
}

// Release removes the key
func (r *RedisDeduplicator) Release(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("release %s: %w", key, err)
	}
	return nil
}

// Close closes redis connection
func (r *RedisDeduplicator) Close() error {
	return r.client.Close()
}

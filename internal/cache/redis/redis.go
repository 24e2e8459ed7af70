// Package redis implements the cache.Cache contract on a Redis server
// using the go-redis client.
//
// The returned handle wraps a connection pool, is safe for concurrent
// use, and is meant to be opened once at startup and closed at shutdown
// — main owns it and passes it to both entity services explicitly.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BehruzDev0000/learning-center/internal/cache"
	"github.com/BehruzDev0000/learning-center/internal/config"

	goredis "github.com/redis/go-redis/v9"
)

// Redis is the Redis-backed cache.Cache implementation.
type Redis struct {
	client *goredis.Client
}

// Interface assertion: a compile error here beats a runtime surprise.
var _ cache.Cache = (*Redis)(nil)

// New connects to the Redis server configured in cfg.Cache and pings it
// once so a bad address fails at boot, not on the first request.
func New(ctx context.Context, cfg *config.Config) (*Redis, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Cache.Address,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis.New: ping %s: %w", cfg.Cache.Address, err)
	}

	return &Redis{client: client}, nil
}

// Get fetches a string value. redis.Nil (the client's "no such key"
// sentinel) is translated to cache.ErrMiss so callers never import the
// redis client to interpret results.
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", cache.ErrMiss
		}
		return "", fmt.Errorf("redis get %q: %w", key, err)
	}
	return value, nil
}

// Set writes a value with the given TTL (SET with EX semantics).
func (r *Redis) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Del removes the given keys. Redis DEL already treats absent keys as a
// no-op, which is exactly the idempotent invalidation the services rely on.
func (r *Redis) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del %v: %w", keys, err)
	}
	return nil
}

// Close releases the client's connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

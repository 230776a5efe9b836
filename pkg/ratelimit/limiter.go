// Package ratelimit throttles credential endpoints with a fixed window
// counter kept in Redis.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrLimited is returned when a key has exceeded its attempt budget.
var ErrLimited = errors.New("too many attempts")

// Limiter enforces an attempt budget per key.
type Limiter interface {
	Enforce(ctx context.Context, key string) error
}

// RedisLimiter counts attempts per key with INCR and expires the counter
// after the window elapses.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	max    int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, prefix string, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		max:    max,
		window: window,
	}
}

func (l *RedisLimiter) Enforce(ctx context.Context, key string) error {
	full := l.prefix + ":" + key

	count, err := l.client.Incr(ctx, full).Result()
	if err != nil {
		return fmt.Errorf("ratelimit redis unavailable: %w", err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, full, l.window).Err(); err != nil {
			return fmt.Errorf("ratelimit redis unavailable: %w", err)
		}
	}

	if count > int64(l.max) {
		return ErrLimited
	}

	return nil
}

// Noop passes every attempt. Used when Redis is not configured.
type Noop struct{}

func (Noop) Enforce(ctx context.Context, key string) error {
	return nil
}

package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, max int, window time.Duration) (*RedisLimiter, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisLimiter(rdb, "login", max, window), mr
}

func TestEnforceWithinBudget(t *testing.T) {
	limiter, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := limiter.Enforce(ctx, "a@x.com"); err != nil {
			t.Fatalf("attempt %d rejected: %v", i+1, err)
		}
	}
}

func TestEnforceOverBudget(t *testing.T) {
	limiter, _ := newTestLimiter(t, 2, time.Minute)
	ctx := context.Background()

	_ = limiter.Enforce(ctx, "a@x.com")
	_ = limiter.Enforce(ctx, "a@x.com")

	if err := limiter.Enforce(ctx, "a@x.com"); !errors.Is(err, ErrLimited) {
		t.Fatalf("expected ErrLimited, got %v", err)
	}

	// Other keys keep their own budget.
	if err := limiter.Enforce(ctx, "b@x.com"); err != nil {
		t.Fatalf("unrelated key rejected: %v", err)
	}
}

func TestEnforceWindowReset(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	_ = limiter.Enforce(ctx, "a@x.com")
	if err := limiter.Enforce(ctx, "a@x.com"); !errors.Is(err, ErrLimited) {
		t.Fatalf("expected ErrLimited, got %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if err := limiter.Enforce(ctx, "a@x.com"); err != nil {
		t.Fatalf("expected fresh window, got %v", err)
	}
}

func TestNoopAlwaysAllows(t *testing.T) {
	var limiter Limiter = Noop{}
	for i := 0; i < 100; i++ {
		if err := limiter.Enforce(context.Background(), "k"); err != nil {
			t.Fatalf("noop rejected: %v", err)
		}
	}
}

package ratelimit

import (
	"context"
	"time"

	redisadapter "github.com/mkraev/booking-wizard/internal/adapters/redis"
	"github.com/mkraev/booking-wizard/internal/observability"
)

type RateLimiter struct {
	redis *redisadapter.Store
}

func NewRateLimiter(redis *redisadapter.Store) *RateLimiter {
	return &RateLimiter{redis: redis}
}

// Allow counts a hit against the key's window. Redis errors fail open.
func (rl *RateLimiter) Allow(ctx context.Context, key string, rate int, period time.Duration) bool {
	fullKey := "rl:" + key

	pipe := rl.redis.Client().Pipeline()
	incr := pipe.Incr(ctx, fullKey)
	pipe.Expire(ctx, fullKey, period)

	if _, err := pipe.Exec(ctx); err != nil {
		return true
	}

	if incr.Val() > int64(rate) {
		observability.RateLimitExceeded.Inc()
		return false
	}
	return true
}

// Package ratelimit throttles login attempts per identifier using a
// Redis counter with a sliding expiry window.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pkolesov/launchbook/internal/common"
)

type RedisLimiter struct {
	rdb         *redis.Client
	maxAttempts int
	window      time.Duration
}

func NewRedisLimiter(rdb *redis.Client, maxAttempts int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, maxAttempts: maxAttempts, window: window}
}

// Allow records one attempt for key and returns
// common.ErrTooManyAttempts once the count within the window exceeds
// the limit. The window starts on the first attempt.
func (l *RedisLimiter) Allow(ctx context.Context, key string) error {
	redisKey := "login_attempts:" + key

	n, err := l.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	if n == 1 {
		if err := l.rdb.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	if n > int64(l.maxAttempts) {
		return common.ErrTooManyAttempts
	}

	return nil
}

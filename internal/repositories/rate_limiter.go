package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/R-umaria/boxedwithlove/internal/config"
	"github.com/redis/go-redis/v9"
)

// LoginRateLimiter is the slice of the limiter the user service needs.
type LoginRateLimiter interface {
	CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error)
}

// RateLimiter tracks login attempts per email in a redis sorted set,
// scored by attempt time, giving a sliding window.
type RateLimiter struct {
	client *redis.Client
	config *config.RateConfig
}

func NewRateLimiter(client *redis.Client, cfg *config.RateConfig) *RateLimiter {
	return &RateLimiter{client: client, config: cfg}
}

// CheckLoginRateLimit records an attempt and reports whether it is allowed,
// the attempts left in the window, and the seconds to wait when blocked.
func (r *RateLimiter) CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error) {

	key := fmt.Sprintf("login_attempts:%s", email)

	now := time.Now().Unix()

	windowStart := now - int64(r.config.WindowSize.Seconds())

	pipe := r.client.Pipeline()

	// drop attempts that fell out of the window, then record this one
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})

	count := pipe.ZCard(ctx, key)

	pipe.Expire(ctx, key, r.config.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, 0, err
	}

	attempts := count.Val()
	remaining := r.config.MaxAttempts - attempts

	if attempts >= r.config.MaxAttempts {
		oldest, err := r.client.ZRange(ctx, key, 0, 0).Result()
		if err != nil || len(oldest) == 0 {
			return false, 0, 0, err
		}

		oldestTime, err := strconv.ParseInt(oldest[0], 10, 64)
		if err != nil {
			return false, 0, 0, err
		}

		retryAfter := int64(r.config.WindowSize.Seconds()) - (now - oldestTime)

		return false, 0, int(retryAfter), nil
	}

	return true, int(remaining), 0, nil
}

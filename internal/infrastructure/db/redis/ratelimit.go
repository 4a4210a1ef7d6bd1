package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:"

// FixedWindowLimiter counts requests per key in fixed windows.
// Key format: ratelimit:<key>
type FixedWindowLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

func NewFixedWindowLimiter(client *redis.Client, max int, window time.Duration) (*FixedWindowLimiter, error) {
	if max <= 0 {
		return nil, fmt.Errorf("rate limit max must be positive, got %d", max)
	}
	if window <= 0 {
		return nil, fmt.Errorf("rate limit window must be positive, got %s", window)
	}
	return &FixedWindowLimiter{client: client, max: int64(max), window: window}, nil
}

// Allow records one hit for key and reports whether it is within the limit.
// The window starts at the first hit; later hits do not extend it.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := rateLimitPrefix + key

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit %s: %w", key, err)
	}
	return incr.Val() <= l.max, nil
}

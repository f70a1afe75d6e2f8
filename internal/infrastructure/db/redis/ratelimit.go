package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultLimit  = 3
	defaultWindow = time.Hour
)

// SubmissionLimiter is a fixed-window counter backed by Redis.
// Key format: ratelimit:<caller hash>
type SubmissionLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewSubmissionLimiter creates a limiter allowing limit submissions per
// window. Non-positive arguments fall back to 3 per hour.
func NewSubmissionLimiter(client *redis.Client, limit int, window time.Duration) *SubmissionLimiter {
	if limit <= 0 {
		limit = defaultLimit
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &SubmissionLimiter{client: client, limit: int64(limit), window: window}
}

// Allow counts one attempt for key and reports whether it is within the
// limit. The window starts on the first attempt and is not sliding.
func (l *SubmissionLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := fmt.Sprintf("ratelimit:%s", key)

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= l.limit, nil
}

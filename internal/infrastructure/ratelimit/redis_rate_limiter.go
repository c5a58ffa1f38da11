package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/studytrack-io/studytrack/internal/domain/service"
)

// redisRateLimiter is a fixed-window counter: INCR the key, refresh the
// window expiry, deny once the count exceeds the limit. On a Redis failure
// it fails open so a cache outage never blocks logins.
type redisRateLimiter struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisRateLimiter(client *redis.Client, logger *zap.Logger) service.RateLimiter {
	return &redisRateLimiter{client: client, logger: logger.Named("rate_limiter")}
}

func (r *redisRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 {
		return true, nil
	}

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		return nil
	})
	if err != nil {
		r.logger.Error("rate limit pipeline failed", zap.String("key", key), zap.Error(err))
		return true, fmt.Errorf("redis operation failed during rate limit check: %w", err)
	}

	count := incr.Val()
	if count > int64(limit) {
		r.logger.Warn("rate limit exceeded",
			zap.String("key", key), zap.Int64("count", count), zap.Int("limit", limit))
		return false, nil
	}
	return true, nil
}

var _ service.RateLimiter = (*redisRateLimiter)(nil)

package ratelimit

import (
	"context"
	"time"

	"github.com/studytrack-io/studytrack/internal/domain/service"
)

// noopRateLimiter allows everything. Used when rate limiting is disabled
// and no Redis connection is configured.
type noopRateLimiter struct{}

func NoopRateLimiter() service.RateLimiter {
	return noopRateLimiter{}
}

func (noopRateLimiter) Allow(_ context.Context, _ string, _ int, _ time.Duration) (bool, error) {
	return true, nil
}

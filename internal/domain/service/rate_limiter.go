package service

import (
	"context"
	"time"
)

// RateLimiter answers whether one more event is allowed under the keyed
// fixed window.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

package port

import (
	"context"
	"time"
)

// CacheRepository holds short-lived counters shared by the rate limiter.
type CacheRepository interface {
	// Increment bumps key inside a fixed window that starts on the first hit
	// and returns the new count with the window's reset time.
	Increment(ctx context.Context, key string, window time.Duration) (int64, time.Time, error)
}

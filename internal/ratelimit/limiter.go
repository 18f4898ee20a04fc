// Package ratelimit provides sliding-window request limiting for the
// public chat endpoints.
package ratelimit

import (
	"context"
	"errors"
	"time"
)

// ErrLimitExceeded is returned by Check alongside the Result when the key is
// over its limit, so callers can tell a blocked request from a broken limiter.
var ErrLimitExceeded = errors.New("rate limit exceeded")

// Result describes one rate-limit decision.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Limiter counts hits per key over a sliding window.
type Limiter interface {
	Check(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}

package ratelimit

import (
	"context"
	"time"
)

// Store defines the counter backend for the login rate limiter. All
// operations must be atomic per key; concurrent increments for the same key
// must not race into inconsistent counts.
type Store interface {
	// Increment atomically adds one attempt for the key and returns the new
	// count. The first increment in a window starts the window TTL.
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)

	// Lock starts a lockout period for the key.
	Lock(ctx context.Context, key string, lockout time.Duration) error

	// LockoutRemaining returns the remaining lockout duration, or zero when
	// the key is not locked out.
	LockoutRemaining(ctx context.Context, key string) (time.Duration, error)

	// Reset clears the attempt counter and lockout for the key.
	Reset(ctx context.Context, key string) error
}

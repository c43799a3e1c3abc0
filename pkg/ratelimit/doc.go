// Package ratelimit throttles login attempts per source identifier, typically
// the client IP.
//
// The limiter allows MaxAttempts within Window; the attempt that exceeds the
// budget starts a Lockout deny-period with its own TTL, independent of the
// counting window. Reset is called only after a fully successful
// authentication so that an attacker cannot clear the counter by completing
// just the password step of a two-factor login.
//
// Entries are ephemeral: both backends expire state via TTLs and nothing is
// ever written to durable storage.
//
// # Fail-open behavior
//
// When the backing store is unreachable, Check allows the request and flags
// the result as Degraded, logging a warning. Login availability takes
// priority over rate limiting when the dependency is down.
//
// # Usage
//
//	store := ratelimit.NewRedisStore(redisClient, "login:")
//	limiter, _ := ratelimit.New(store, ratelimit.Config{
//	    MaxAttempts: 5,
//	    Window:      5 * time.Minute,
//	    Lockout:     15 * time.Minute,
//	})
//
//	res, _ := limiter.Check(ctx, clientIP)
//	if !res.Allowed {
//	    // deny with res.RetryAfter hint
//	}
package ratelimit

// Package redis provides connection helpers for the Redis server backing the
// login rate limiter and the session store.
//
// Connect retries per the supplied configuration, which can be populated from
// environment variables via github.com/caarlos0/env:
//
//	var cfg redis.Config
//	if err := env.Parse(&cfg); err != nil { ... }
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // terminate: lockout and session state need Redis
//	}
//	defer client.Close()
//
// Healthcheck integrates the connection into liveness and readiness probes.
// Sentinel errors (ErrRedisNotReady and friends) wrap underlying go-redis
// errors with errors.Join.
package redis

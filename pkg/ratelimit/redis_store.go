package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	attemptsSuffix = ":attempts"
	lockoutSuffix  = ":lockout"
)

// RedisStore implements Store on top of Redis so attempt counters are shared
// across instances. Counter keys carry a TTL equal to the window; lockout
// markers carry their own TTL and outlive the counter.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed rate limit store. The prefix
// namespaces keys, e.g. "login:".
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	k := s.prefix + key + attemptsSuffix

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	// NX keeps the original window; only the first attempt sets the TTL.
	pipe.ExpireNX(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, errors.Join(ErrStoreUnavailable, err)
	}

	return incr.Val(), nil
}

func (s *RedisStore) Lock(ctx context.Context, key string, lockout time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+key+lockoutSuffix, 1, lockout).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) LockoutRemaining(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := s.client.TTL(ctx, s.prefix+key+lockoutSuffix).Result()
	if err != nil {
		return 0, errors.Join(ErrStoreUnavailable, err)
	}
	// TTL returns negative values for missing keys or keys without expiry.
	if ttl <= 0 {
		return 0, nil
	}
	return ttl, nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key+attemptsSuffix, s.prefix+key+lockoutSuffix).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

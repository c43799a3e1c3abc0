package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on Redis. Sessions are stored as JSON under
// the token key with a TTL matching the session expiry; a per-user set
// indexes tokens so RevokeUser works without scanning.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed session store. The prefix namespaces
// keys, e.g. "session:".
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) tokenKey(token string) string {
	return s.prefix + token
}

func (s *RedisStore) userKey(userID uuid.UUID) string {
	return s.prefix + "user:" + userID.String()
}

func (s *RedisStore) Create(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return ErrSessionExpired
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.tokenKey(session.Token), data, ttl)
	pipe.SAdd(ctx, s.userKey(session.UserID), session.Token)
	// The index lives slightly longer than the session so revocation still
	// sees tokens that are about to expire.
	pipe.Expire(ctx, s.userKey(session.UserID), ttl+time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.client.Get(ctx, s.tokenKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	sess, err := s.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.tokenKey(token))
	pipe.SRem(ctx, s.userKey(sess.UserID), token)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	tokens, err := s.client.SMembers(ctx, s.userKey(userID)).Result()
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, s.tokenKey(token))
	}
	keys = append(keys, s.userKey(userID))

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

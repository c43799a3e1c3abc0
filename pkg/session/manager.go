package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	// tokenBytes is the entropy of a session token before encoding.
	tokenBytes = 32

	// DefaultTTL matches the typical access-token lifetime.
	DefaultTTL = 30 * time.Minute
)

// Manager issues, validates, and revokes sessions against a Store.
type Manager struct {
	store Store
	ttl   time.Duration
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithTTL overrides the default session lifetime.
func WithTTL(ttl time.Duration) ManagerOption {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// NewManager creates a session manager.
func NewManager(store Store, opts ...ManagerOption) (*Manager, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	m := &Manager{store: store, ttl: DefaultTTL}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Issue creates a session bound to the given user with an explicit expiry.
func (m *Manager) Issue(ctx context.Context, userID uuid.UUID, username string) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sess := &Session{
		ID:        uuid.New(),
		Token:     token,
		UserID:    userID,
		Username:  username,
		ExpiresAt: now.Add(m.ttl),
		CreatedAt: now,
	}

	if err := m.store.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Validate resolves a token to its session. Expired sessions are deleted and
// reported as ErrSessionExpired; unknown tokens as ErrSessionNotFound.
func (m *Manager) Validate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	sess, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	if sess.IsExpired() {
		_ = m.store.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	return sess, nil
}

// Revoke removes a single session.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	return m.store.Delete(ctx, token)
}

// RevokeUser removes every session belonging to the user. Required when the
// master password changes: outstanding tokens must stop working immediately.
func (m *Manager) RevokeUser(ctx context.Context, userID uuid.UUID) error {
	return m.store.DeleteByUserID(ctx, userID)
}

func generateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/vaultkit/pkg/auth"
	"github.com/dmitrymomot/vaultkit/pkg/breach"
	"github.com/dmitrymomot/vaultkit/pkg/email"
	"github.com/dmitrymomot/vaultkit/pkg/keyderive"
	"github.com/dmitrymomot/vaultkit/pkg/ratelimit"
	"github.com/dmitrymomot/vaultkit/pkg/session"
)

// memStorage is an in-memory Storage implementation for tests.
type memStorage struct {
	mu    sync.Mutex
	users map[uuid.UUID]*auth.User
}

func newMemStorage() *memStorage {
	return &memStorage{users: make(map[uuid.UUID]*auth.User)}
}

func (m *memStorage) CreateUser(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return auth.ErrUsernameTaken
		}
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memStorage) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (m *memStorage) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email != "" && u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (m *memStorage) FindByResetToken(_ context.Context, token string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ResetToken != "" && u.ResetToken == token {
			clone := *u
			return &clone, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (m *memStorage) UpdatePasswordHash(_ context.Context, userID uuid.UUID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return auth.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *memStorage) UpdatePasswordAndSalt(_ context.Context, userID uuid.UUID, hash string, salt []byte, kdfVersion uint8) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return auth.ErrUserNotFound
	}
	u.PasswordHash = hash
	u.Salt = append([]byte(nil), salt...)
	u.KDFVersion = keyderive.Version(kdfVersion)
	return nil
}

func (m *memStorage) UpdateTOTP(_ context.Context, userID uuid.UUID, secret string, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return auth.ErrUserNotFound
	}
	u.TOTPSecret = secret
	u.TOTPEnabled = enabled
	return nil
}

func (m *memStorage) UpdateResetToken(_ context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return auth.ErrUserNotFound
	}
	u.ResetToken = token
	u.ResetTokenExpiresAt = expiresAt
	return nil
}

func (m *memStorage) ClearResetToken(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return auth.ErrUserNotFound
	}
	u.ResetToken = ""
	u.ResetTokenExpiresAt = time.Time{}
	return nil
}

func (m *memStorage) DeleteUser(_ context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userID]; !ok {
		return auth.ErrUserNotFound
	}
	delete(m.users, userID)
	return nil
}

// expireResetToken forces a stored token's expiry into the past.
func (m *memStorage) expireResetToken(userID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[userID].ResetTokenExpiresAt = time.Now().Add(-time.Minute)
}

// resetTokenOf reads the stored token directly, standing in for the email
// the user would receive.
func (m *memStorage) resetTokenOf(userID uuid.UUID) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[userID].ResetToken
}

func (m *memStorage) secretOf(userID uuid.UUID) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[userID].TOTPSecret
}

// recordingSender captures sent emails for assertions.
type recordingSender struct {
	mu   sync.Mutex
	sent []email.SendEmailParams
	done chan struct{}
}

func newRecordingSender() *recordingSender {
	return &recordingSender{done: make(chan struct{}, 16)}
}

func (r *recordingSender) SendEmail(_ context.Context, params email.SendEmailParams) error {
	r.mu.Lock()
	r.sent = append(r.sent, params)
	r.mu.Unlock()
	r.done <- struct{}{}
	return nil
}

func (r *recordingSender) waitForSend(t *testing.T) email.SendEmailParams {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for email send")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sent[len(r.sent)-1]
}

// staticBreachChecker returns a fixed result.
type staticBreachChecker struct {
	result breach.Result
	err    error
}

func (c *staticBreachChecker) Check(_ context.Context, _ string) (breach.Result, error) {
	return c.result, c.err
}

type testEngine struct {
	svc     *auth.Service
	storage *memStorage
	limiter *ratelimit.Limiter
}

func newTestEngine(t *testing.T, opts ...auth.Option) *testEngine {
	t.Helper()

	storage := newMemStorage()

	limitStore := ratelimit.NewMemoryStore()
	t.Cleanup(limitStore.Close)
	limiter, err := ratelimit.New(limitStore, ratelimit.Config{
		MaxAttempts: 5,
		Window:      5 * time.Minute,
		Lockout:     15 * time.Minute,
	})
	require.NoError(t, err)

	sessions, err := session.NewManager(session.NewMemoryStore())
	require.NoError(t, err)

	// Minimum cost keeps the hashing-heavy tests fast.
	opts = append([]auth.Option{auth.WithBcryptCost(4)}, opts...)
	svc, err := auth.NewService(storage, limiter, sessions, opts...)
	require.NoError(t, err)

	return &testEngine{svc: svc, storage: storage, limiter: limiter}
}

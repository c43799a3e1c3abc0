package vault_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/vaultkit/pkg/auth"
	"github.com/dmitrymomot/vaultkit/pkg/breach"
	"github.com/dmitrymomot/vaultkit/pkg/keyderive"
	"github.com/dmitrymomot/vaultkit/pkg/vault"
)

// memCredentials is an in-memory Credentials resolver.
type memCredentials struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func newMemCredentials() *memCredentials {
	return &memCredentials{users: make(map[string]*auth.User)}
}

func (m *memCredentials) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (m *memCredentials) addUser(t *testing.T, username, password string) *auth.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	salt, err := keyderive.NewSalt()
	require.NoError(t, err)

	user := &auth.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Salt:         salt,
		KDFVersion:   keyderive.CurrentVersion,
		CreatedAt:    time.Now(),
	}

	m.mu.Lock()
	m.users[username] = user
	m.mu.Unlock()
	return user
}

// rotatePassword swaps a user's hash and salt the way a password change does,
// keeping the user ID stable.
func (m *memCredentials) rotatePassword(t *testing.T, username, newPassword string, newSalt []byte) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.MinCost)
	require.NoError(t, err)

	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[username]
	require.True(t, ok)
	u.PasswordHash = string(hash)
	u.Salt = newSalt
	u.KDFVersion = keyderive.CurrentVersion
}

// memVaultStorage is an in-memory vault Storage implementation.
type memVaultStorage struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*vault.Account
}

func newMemVaultStorage() *memVaultStorage {
	return &memVaultStorage{accounts: make(map[uuid.UUID]*vault.Account)}
}

func (m *memVaultStorage) CreateAccount(_ context.Context, account *vault.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.UserID == account.UserID && a.Service == account.Service {
			return vault.ErrServiceExists
		}
	}
	clone := *account
	m.accounts[account.ID] = &clone
	return nil
}

func (m *memVaultStorage) AccountsByUser(_ context.Context, userID uuid.UUID) ([]*vault.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*vault.Account
	for _, a := range m.accounts {
		if a.UserID == userID {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (m *memVaultStorage) AccountByService(_ context.Context, userID uuid.UUID, service string) (*vault.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.UserID == userID && a.Service == service {
			clone := *a
			return &clone, nil
		}
	}
	return nil, vault.ErrAccountNotFound
}

func (m *memVaultStorage) UpdateAccount(_ context.Context, account *vault.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; !ok {
		return vault.ErrAccountNotFound
	}
	clone := *account
	m.accounts[account.ID] = &clone
	return nil
}

func (m *memVaultStorage) DeleteAccount(_ context.Context, userID uuid.UUID, service string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, a := range m.accounts {
		if a.UserID == userID && a.Service == service {
			delete(m.accounts, id)
			return nil
		}
	}
	return vault.ErrAccountNotFound
}

// setLastChanged backdates one entry for age tests.
func (m *memVaultStorage) setLastChanged(userID uuid.UUID, service string, ts time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.UserID == userID && a.Service == service {
			a.LastChanged = ts
		}
	}
}

// staticBreachChecker returns a canned breach result or error.
type staticBreachChecker struct {
	result breach.Result
	err    error
}

func (c *staticBreachChecker) Check(_ context.Context, _ string) (breach.Result, error) {
	if c.err != nil {
		return breach.Result{}, c.err
	}
	return c.result, nil
}

type testVault struct {
	svc     *vault.Service
	storage *memVaultStorage
	creds   *memCredentials
}

func newTestVault(t *testing.T, opts ...vault.Option) *testVault {
	t.Helper()

	storage := newMemVaultStorage()
	creds := newMemCredentials()
	svc, err := vault.NewService(storage, creds, opts...)
	require.NoError(t, err)

	return &testVault{svc: svc, storage: storage, creds: creds}
}

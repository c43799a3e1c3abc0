package vault

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/vaultkit/pkg/auth"
	"github.com/dmitrymomot/vaultkit/pkg/breach"
	"github.com/dmitrymomot/vaultkit/pkg/keyderive"
	"github.com/dmitrymomot/vaultkit/pkg/logger"
	"github.com/dmitrymomot/vaultkit/pkg/sanitizer"
	"github.com/dmitrymomot/vaultkit/pkg/validator"
)

// Storage persists encrypted vault entries. Lookups return
// ErrAccountNotFound when no row matches; CreateAccount returns
// ErrServiceExists on a per-user service conflict.
type Storage interface {
	CreateAccount(ctx context.Context, account *Account) error
	AccountsByUser(ctx context.Context, userID uuid.UUID) ([]*Account, error)
	AccountByService(ctx context.Context, userID uuid.UUID, service string) (*Account, error)
	UpdateAccount(ctx context.Context, account *Account) error
	DeleteAccount(ctx context.Context, userID uuid.UUID, service string) error
}

// Credentials resolves a username to its credential record, supplying the
// per-user salt and KDF version the vault key is derived from. Satisfied by
// the auth storage backend.
type Credentials interface {
	FindByUsername(ctx context.Context, username string) (*auth.User, error)
}

// BreachChecker reports whether a secret appears in known breach corpora.
type BreachChecker interface {
	Check(ctx context.Context, password string) (breach.Result, error)
}

// DefaultMaxPasswordAge is how old a stored secret may grow before
// CheckPasswordAge flags it stale.
const DefaultMaxPasswordAge = 90 * 24 * time.Hour

// Service is the credential vault. The vault key is re-derived from the
// caller-supplied master password on every operation and never persisted or
// cached; minimizing the key's lifetime is deliberate.
type Service struct {
	storage     Storage
	credentials Credentials
	breach      BreachChecker // optional
	logger      *slog.Logger
	maxAge      time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithBreachChecker enables advisory breach lookups on stored secrets.
func WithBreachChecker(checker BreachChecker) Option {
	return func(s *Service) {
		s.breach = checker
	}
}

// WithMaxPasswordAge overrides the staleness threshold.
func WithMaxPasswordAge(age time.Duration) Option {
	return func(s *Service) {
		if age > 0 {
			s.maxAge = age
		}
	}
}

// NewService creates the vault service.
func NewService(storage Storage, credentials Credentials, opts ...Option) (*Service, error) {
	if storage == nil {
		return nil, fmt.Errorf("vault: storage is required")
	}
	if credentials == nil {
		return nil, fmt.Errorf("vault: credentials resolver is required")
	}

	s := &Service{
		storage:     storage,
		credentials: credentials,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxAge:      DefaultMaxPasswordAge,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// deriveKey resolves the user and derives their vault key from the supplied
// master password. The password is NOT verified against the storage hash
// here: read paths let a wrong password surface as per-entry decryption
// failures instead.
func (s *Service) deriveKey(ctx context.Context, username, masterPassword string) (*auth.User, []byte, error) {
	username = sanitizer.NormalizeUsername(username)
	if username == "" || masterPassword == "" {
		return nil, nil, ErrVaultLocked
	}

	user, err := s.credentials.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, nil, ErrVaultLocked
		}
		return nil, nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	key, err := keyderive.DeriveWithVersion(masterPassword, user.Salt, user.KDFVersion)
	if err != nil {
		return nil, nil, errors.Join(ErrVaultLocked, err)
	}
	return user, key, nil
}

// unlockForWrite additionally verifies the master password against the
// storage hash. Mutating operations must not proceed under a mistyped
// password: an entry encrypted with the wrong key would be unreadable later.
func (s *Service) unlockForWrite(ctx context.Context, username, masterPassword string) (*auth.User, []byte, error) {
	user, key, err := s.deriveKey(ctx, username, masterPassword)
	if err != nil {
		return nil, nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(masterPassword)); err != nil {
		keyderive.ClearKey(key)
		return nil, nil, ErrVaultLocked
	}
	return user, key, nil
}

// scoreAndFlag computes the strength score for a secret and, when a breach
// checker is wired, its breach flag. Lookup failures only log.
func (s *Service) scoreAndFlag(ctx context.Context, secret string) (int, bool) {
	score := validator.PasswordScore(secret)

	if s.breach == nil {
		return score, false
	}
	res, err := s.breach.Check(ctx, secret)
	if err != nil {
		s.logger.WarnContext(ctx, "breach lookup unavailable",
			logger.Error(err),
			logger.Component("vault"),
		)
		return score, false
	}
	return score, res.Compromised
}

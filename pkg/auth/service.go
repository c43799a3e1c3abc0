package auth

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/vaultkit/pkg/breach"
	"github.com/dmitrymomot/vaultkit/pkg/email"
	"github.com/dmitrymomot/vaultkit/pkg/ratelimit"
	"github.com/dmitrymomot/vaultkit/pkg/session"
	"github.com/dmitrymomot/vaultkit/pkg/validator"
)

// Storage is the credential store contract consumed by the engine.
// Every operation is a single-row atomic read or read-modify-write; the
// engine never holds a "current user" across calls.
//
// Lookups return ErrUserNotFound when no row matches.
type Storage interface {
	CreateUser(ctx context.Context, user *User) error
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByResetToken(ctx context.Context, token string) (*User, error)

	UpdatePasswordHash(ctx context.Context, userID uuid.UUID, hash string) error
	UpdatePasswordAndSalt(ctx context.Context, userID uuid.UUID, hash string, salt []byte, kdfVersion uint8) error
	UpdateTOTP(ctx context.Context, userID uuid.UUID, secret string, enabled bool) error
	UpdateResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	ClearResetToken(ctx context.Context, userID uuid.UUID) error

	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// SecretRewrapper re-encrypts a user's vaulted secrets under a new key.
// Implemented by the vault service; used when the master password changes
// with the old password still known.
type SecretRewrapper interface {
	ReencryptAll(ctx context.Context, userID uuid.UUID, oldKey, newKey []byte) error
}

// BreachChecker reports whether a password appears in known breach corpora.
// Lookups are advisory and never block account operations.
type BreachChecker interface {
	Check(ctx context.Context, password string) (breach.Result, error)
}

// Service is the authentication engine: registration, login with optional
// TOTP, the reset-token lifecycle, and master password changes.
type Service struct {
	storage  Storage
	limiter  *ratelimit.Limiter
	sessions *session.Manager

	sender    email.EmailSender // optional; reset emails are skipped without it
	breach    BreachChecker     // optional
	rewrapper SecretRewrapper   // optional; ChangePassword re-wraps when set

	logger           *slog.Logger
	bcryptCost       int
	resetTokenTTL    time.Duration
	totpIssuer       string
	passwordStrength validator.PasswordStrengthConfig

	// dummyHash absorbs a bcrypt comparison for unknown usernames so their
	// failure latency matches known-user wrong-password failures.
	dummyHash []byte
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBcryptCost sets the bcrypt cost for password hashing.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

// WithResetTokenTTL sets the TTL for password reset tokens.
func WithResetTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.resetTokenTTL = ttl
	}
}

// WithTOTPIssuer sets the issuer shown in authenticator apps.
func WithTOTPIssuer(issuer string) Option {
	return func(s *Service) {
		s.totpIssuer = issuer
	}
}

// WithPasswordStrength sets custom password strength requirements.
func WithPasswordStrength(config validator.PasswordStrengthConfig) Option {
	return func(s *Service) {
		s.passwordStrength = config
	}
}

// WithEmailSender enables reset-email delivery.
func WithEmailSender(sender email.EmailSender) Option {
	return func(s *Service) {
		s.sender = sender
	}
}

// WithBreachChecker enables advisory breach lookups on registration and
// password changes.
func WithBreachChecker(checker BreachChecker) Option {
	return func(s *Service) {
		s.breach = checker
	}
}

// WithSecretRewrapper wires the vault so ChangePassword can re-encrypt
// stored secrets under the new master key.
func WithSecretRewrapper(rewrapper SecretRewrapper) Option {
	return func(s *Service) {
		s.rewrapper = rewrapper
	}
}

// NewService creates the authentication engine. Storage, rate limiter, and
// session manager are required collaborators.
func NewService(storage Storage, limiter *ratelimit.Limiter, sessions *session.Manager, opts ...Option) (*Service, error) {
	if storage == nil {
		return nil, fmt.Errorf("auth: storage is required")
	}
	if limiter == nil {
		return nil, fmt.Errorf("auth: rate limiter is required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("auth: session manager is required")
	}

	s := &Service{
		storage:          storage,
		limiter:          limiter,
		sessions:         sessions,
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		bcryptCost:       bcrypt.DefaultCost,
		resetTokenTTL:    30 * time.Minute,
		totpIssuer:       "vaultkit",
		passwordStrength: validator.DefaultPasswordStrength(),
	}
	for _, opt := range opts {
		opt(s)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to prepare dummy hash: %w", err)
	}
	s.dummyHash = dummy

	return s, nil
}

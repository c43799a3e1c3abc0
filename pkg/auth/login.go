package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/vaultkit/pkg/logger"
	"github.com/dmitrymomot/vaultkit/pkg/sanitizer"
)

// Login runs one authentication attempt through the engine:
//
//	rate check -> lookup -> password verify -> TOTP -> session
//
// The rate check happens before any storage lookup so database access
// patterns cannot leak username existence. All credential failures surface
// as ErrInvalidCredentials without distinguishing the failing step.
func (s *Service) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	username := sanitizer.NormalizeUsername(params.Username)
	if username == "" || params.Password == "" {
		return nil, ErrInvalidCredentials
	}

	rateKey := params.SourceIP
	if rateKey == "" {
		rateKey = username
	}

	limit, err := s.limiter.Check(ctx, rateKey)
	if err != nil {
		return nil, fmt.Errorf("rate limit check: %w", err)
	}
	if !limit.Allowed {
		return nil, &RateLimitError{RetryAfter: limit.RetryAfter}
	}

	user, err := s.storage.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Same-cost comparison keeps unknown-user latency
			// indistinguishable from a wrong password.
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(params.Password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(params.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.maybeRehash(ctx, user, params.Password)

	if user.TOTPEnabled {
		if params.TOTPCode == "" {
			// Valid intermediate state; the rate counter is NOT reset here.
			return &LoginResult{TwoFactorRequired: true}, nil
		}
		ok, err := validateTOTPCode(user.TOTPSecret, params.TOTPCode)
		if err != nil || !ok {
			return nil, ErrInvalidCredentials
		}
	}

	sess, err := s.sessions.Issue(ctx, user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}

	if err := s.limiter.Reset(ctx, rateKey); err != nil {
		s.logger.WarnContext(ctx, "failed to reset rate limit counter",
			logger.Source(rateKey),
			logger.Error(err),
			logger.Component("auth"),
		)
	}

	s.logger.InfoContext(ctx, "login succeeded",
		logger.UserID(user.ID.String()),
		logger.Username(user.Username),
		logger.Component("auth"),
	)

	return &LoginResult{Session: sess}, nil
}

// ValidateSession resolves a session token to its session, enforcing expiry.
func (s *Service) ValidateSession(ctx context.Context, token string) (*LoginResult, error) {
	sess, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Session: sess}, nil
}

// Logout revokes a single session token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// maybeRehash upgrades the stored hash when its cost is below the configured
// cost. Runs only after a successful verification, when the plaintext is
// legitimately in hand; failure is logged and ignored since the old hash
// still verifies.
func (s *Service) maybeRehash(ctx context.Context, user *User, password string) {
	cost, err := bcrypt.Cost([]byte(user.PasswordHash))
	if err != nil || cost >= s.bcryptCost {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return
	}
	if err := s.storage.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		s.logger.WarnContext(ctx, "failed to upgrade password hash cost",
			logger.UserID(user.ID.String()),
			logger.Error(err),
			logger.Component("auth"),
		)
		return
	}
	user.PasswordHash = string(hash)
}

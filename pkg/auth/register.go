package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/vaultkit/pkg/keyderive"
	"github.com/dmitrymomot/vaultkit/pkg/logger"
	"github.com/dmitrymomot/vaultkit/pkg/sanitizer"
	"github.com/dmitrymomot/vaultkit/pkg/validator"
)

// Register creates a new user. Email is optional but unlocks the self-service
// reset flow. The vault KDF salt is generated once here and never regenerated
// implicitly; it only changes on an explicit password change or reset.
func (s *Service) Register(ctx context.Context, username, password, emailAddr string) (*User, error) {
	username = sanitizer.NormalizeUsername(username)
	emailAddr = sanitizer.NormalizeEmail(emailAddr)

	rules := []validator.Rule{
		validator.ValidUsername("username", username),
		validator.StrongPassword("password", password, s.passwordStrength),
		validator.NotCommonPassword("password", password),
	}
	if emailAddr != "" {
		rules = append(rules, validator.ValidEmail("email", emailAddr))
	}
	if err := validator.Apply(rules...); err != nil {
		return nil, err
	}

	_, err := s.storage.FindByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	s.warnIfBreached(ctx, username, password)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	salt, err := keyderive.NewSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        emailAddr,
		PasswordHash: string(hash),
		Salt:         salt,
		KDFVersion:   keyderive.CurrentVersion,
		CreatedAt:    time.Now(),
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		logger.UserID(user.ID.String()),
		logger.Username(user.Username),
		logger.Component("auth"),
	)

	return user, nil
}

// DeleteUser removes a user and, through storage cascade, all vault entries.
// The password re-check makes deletion an authenticated operation; all
// outstanding sessions are revoked.
func (s *Service) DeleteUser(ctx context.Context, username, password string) error {
	user, err := s.verifyPassword(ctx, username, password)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteUser(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if err := s.sessions.RevokeUser(ctx, user.ID); err != nil {
		s.logger.ErrorContext(ctx, "failed to revoke sessions after user deletion",
			logger.UserID(user.ID.String()),
			logger.Error(err),
			logger.Component("auth"),
		)
	}

	s.logger.InfoContext(ctx, "user deleted",
		logger.UserID(user.ID.String()),
		logger.Component("auth"),
	)

	return nil
}

// verifyPassword looks up a user and checks the password, returning
// ErrInvalidCredentials on any mismatch. Unknown usernames absorb a dummy
// comparison so failure latency does not reveal existence.
func (s *Service) verifyPassword(ctx context.Context, username, password string) (*User, error) {
	username = sanitizer.NormalizeUsername(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.storage.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// findByUsername normalizes the username and fetches the user, passing
// ErrUserNotFound through unwrapped.
func (s *Service) findByUsername(ctx context.Context, username string) (*User, error) {
	username = sanitizer.NormalizeUsername(username)
	if username == "" {
		return nil, ErrUserNotFound
	}
	user, err := s.storage.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}

// warnIfBreached performs an advisory breach lookup. Failures and hits are
// logged; neither blocks the operation.
func (s *Service) warnIfBreached(ctx context.Context, username, password string) {
	if s.breach == nil {
		return
	}
	res, err := s.breach.Check(ctx, password)
	if err != nil {
		s.logger.WarnContext(ctx, "breach lookup unavailable",
			logger.Error(err),
			logger.Component("auth"),
		)
		return
	}
	if res.Compromised {
		s.logger.WarnContext(ctx, "password appears in breach corpus",
			logger.Username(username),
			logger.Component("auth"),
		)
	}
}

package auth

import (
	"errors"
	"fmt"
	"time"
)

// General authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("too many attempts")
)

// Reset flow errors
var (
	// ErrInvalidOrExpiredToken covers unknown, expired, and already-used
	// reset tokens; callers cannot distinguish which.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
)

// TOTP lifecycle errors
var (
	ErrTOTPNotEnrolled    = errors.New("no pending authenticator enrollment")
	ErrTOTPNotEnabled     = errors.New("two-factor authentication is not enabled")
	ErrTOTPAlreadyEnabled = errors.New("two-factor authentication already enabled")
)

// RateLimitError reports a denied login attempt with a retry-after hint.
// It matches ErrRateLimited via errors.Is.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("too many attempts, retry after %s", e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}

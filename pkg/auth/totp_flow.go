package auth

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/vaultkit/pkg/logger"
	"github.com/dmitrymomot/vaultkit/pkg/qrcode"
	"github.com/dmitrymomot/vaultkit/pkg/totp"
)

// validateTOTPCode checks a code against a secret with the standard
// one-step skew tolerance.
func validateTOTPCode(secret, code string) (bool, error) {
	return totp.ValidateWithWindow(secret, code, totp.DefaultWindow)
}

// BeginTOTPEnrollment generates a pending authenticator secret for the user.
// The password re-check makes enrollment an authenticated operation. The
// secret is stored disabled; it only becomes active after VerifyTOTPSetup
// confirms the user's authenticator produces matching codes.
func (s *Service) BeginTOTPEnrollment(ctx context.Context, username, password string) (*TOTPEnrollment, error) {
	user, err := s.verifyPassword(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if user.TOTPEnabled {
		return nil, ErrTOTPAlreadyEnabled
	}

	secret, err := totp.GenerateSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate secret: %w", err)
	}

	uri, err := totp.URI(totp.URIParams{
		Secret:      secret,
		AccountName: user.Username,
		Issuer:      s.totpIssuer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build provisioning uri: %w", err)
	}

	qr, err := qrcode.GenerateBase64Image(uri, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to render enrollment qr: %w", err)
	}

	if err := s.storage.UpdateTOTP(ctx, user.ID, secret, false); err != nil {
		return nil, fmt.Errorf("failed to store pending secret: %w", err)
	}

	s.logger.InfoContext(ctx, "totp enrollment started",
		logger.UserID(user.ID.String()),
		logger.Component("auth"),
	)

	return &TOTPEnrollment{
		Secret:          secret,
		ProvisioningURI: uri,
		QRCode:          qr,
	}, nil
}

// VerifyTOTPSetup checks a code against the pending secret and enables
// two-factor authentication on the first success. Codes during normal login
// never pass through here and do not change enrollment state.
func (s *Service) VerifyTOTPSetup(ctx context.Context, username, code string) error {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user.TOTPEnabled {
		return ErrTOTPAlreadyEnabled
	}
	if !user.TOTPPending() {
		return ErrTOTPNotEnrolled
	}

	ok, err := totp.ValidateWithWindow(user.TOTPSecret, code, totp.DefaultWindow)
	if err != nil || !ok {
		return ErrInvalidCredentials
	}

	if err := s.storage.UpdateTOTP(ctx, user.ID, user.TOTPSecret, true); err != nil {
		return fmt.Errorf("failed to enable totp: %w", err)
	}

	s.logger.InfoContext(ctx, "totp enabled",
		logger.UserID(user.ID.String()),
		logger.Component("auth"),
	)

	return nil
}

// DisableTOTP clears the authenticator secret. A currently valid code is
// mandatory; disabling second-factor protection is itself a sensitive
// operation, never a bare toggle.
func (s *Service) DisableTOTP(ctx context.Context, username, code string) error {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !user.TOTPEnabled {
		return ErrTOTPNotEnabled
	}

	ok, err := totp.ValidateWithWindow(user.TOTPSecret, code, totp.DefaultWindow)
	if err != nil || !ok {
		return ErrInvalidCredentials
	}

	if err := s.storage.UpdateTOTP(ctx, user.ID, "", false); err != nil {
		return fmt.Errorf("failed to disable totp: %w", err)
	}

	s.logger.InfoContext(ctx, "totp disabled",
		logger.UserID(user.ID.String()),
		logger.Component("auth"),
	)

	return nil
}

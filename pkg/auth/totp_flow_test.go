package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/vaultkit/pkg/auth"
	"github.com/dmitrymomot/vaultkit/pkg/totp"
)

func TestService_BeginTOTPEnrollment(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t, auth.WithTOTPIssuer("vaultkit-test"))
		ctx := context.Background()
		user, err := e.svc.Register(ctx, "alice", "Sup3r$ecret!", "")
		require.NoError(t, err)

		enrollment, err := e.svc.BeginTOTPEnrollment(ctx, "alice", "Sup3r$ecret!")
		require.NoError(t, err)
		require.NotEmpty(t, enrollment.Secret)
		require.True(t, strings.HasPrefix(enrollment.ProvisioningURI, "otpauth://totp/"))
		require.Contains(t, enrollment.ProvisioningURI, "vaultkit-test")
		require.True(t, strings.HasPrefix(enrollment.QRCode, "data:image/png;base64,"))

		// Secret is stored pending, not enabled.
		require.Equal(t, enrollment.Secret, e.storage.secretOf(user.ID))
		stored, err := e.storage.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		require.False(t, stored.TOTPEnabled)
		require.True(t, stored.TOTPPending())
	})

	t.Run("requires correct password", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t)
		ctx := context.Background()
		_, err := e.svc.Register(ctx, "bob", "Sup3r$ecret!", "")
		require.NoError(t, err)

		_, err = e.svc.BeginTOTPEnrollment(ctx, "bob", "wrong")
		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("rejected when already enabled", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t)
		ctx := context.Background()
		_, err := e.svc.Register(ctx, "carol", "Sup3r$ecret!", "")
		require.NoError(t, err)

		enrollment, err := e.svc.BeginTOTPEnrollment(ctx, "carol", "Sup3r$ecret!")
		require.NoError(t, err)
		code, err := totp.GenerateCode(enrollment.Secret)
		require.NoError(t, err)
		require.NoError(t, e.svc.VerifyTOTPSetup(ctx, "carol", code))

		_, err = e.svc.BeginTOTPEnrollment(ctx, "carol", "Sup3r$ecret!")
		require.ErrorIs(t, err, auth.ErrTOTPAlreadyEnabled)
	})

	t.Run("re-enrollment replaces pending secret", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t)
		ctx := context.Background()
		_, err := e.svc.Register(ctx, "dave", "Sup3r$ecret!", "")
		require.NoError(t, err)

		first, err := e.svc.BeginTOTPEnrollment(ctx, "dave", "Sup3r$ecret!")
		require.NoError(t, err)
		second, err := e.svc.BeginTOTPEnrollment(ctx, "dave", "Sup3r$ecret!")
		require.NoError(t, err)
		require.NotEqual(t, first.Secret, second.Secret)
	})
}

func TestService_VerifyTOTPSetup(t *testing.T) {
	t.Parallel()

	t.Run("first success enables", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t)
		ctx := context.Background()
		_, err := e.svc.Register(ctx, "alice", "Sup3r$ecret!", "")
		require.NoError(t, err)

		enrollment, err := e.svc.BeginTOTPEnrollment(ctx, "alice", "Sup3r$ecret!")
		require.NoError(t, err)

		code, err := totp.GenerateCode(enrollment.Secret)
		require.NoError(t, err)
		require.NoError(t, e.svc.VerifyTOTPSetup(ctx, "alice", code))

		stored, err := e.storage.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		require.True(t, stored.TOTPEnabled)
	})

	t.Run("wrong code keeps enrollment pending", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t)
		ctx := context.Background()
		_, err := e.svc.Register(ctx, "bob", "Sup3r$ecret!", "")
		require.NoError(t, err)

		_, err = e.svc.BeginTOTPEnrollment(ctx, "bob", "Sup3r$ecret!")
		require.NoError(t, err)

		require.ErrorIs(t, e.svc.VerifyTOTPSetup(ctx, "bob", "000000"), auth.ErrInvalidCredentials)

		stored, err := e.storage.FindByUsername(ctx, "bob")
		require.NoError(t, err)
		require.False(t, stored.TOTPEnabled)
		require.True(t, stored.TOTPPending())
	})

	t.Run("no enrollment in progress", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t)
		ctx := context.Background()
		_, err := e.svc.Register(ctx, "carol", "Sup3r$ecret!", "")
		require.NoError(t, err)

		require.ErrorIs(t, e.svc.VerifyTOTPSetup(ctx, "carol", "123456"), auth.ErrTOTPNotEnrolled)
	})
}

func TestService_DisableTOTP(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (*testEngine, string) {
		t.Helper()
		e := newTestEngine(t)
		ctx := context.Background()
		_, err := e.svc.Register(ctx, "alice", "Sup3r$ecret!", "")
		require.NoError(t, err)
		enrollment, err := e.svc.BeginTOTPEnrollment(ctx, "alice", "Sup3r$ecret!")
		require.NoError(t, err)
		code, err := totp.GenerateCode(enrollment.Secret)
		require.NoError(t, err)
		require.NoError(t, e.svc.VerifyTOTPSetup(ctx, "alice", code))
		return e, enrollment.Secret
	}

	t.Run("valid code disables and clears secret", func(t *testing.T) {
		t.Parallel()

		e, secret := setup(t)
		ctx := context.Background()

		code, err := totp.GenerateCode(secret)
		require.NoError(t, err)
		require.NoError(t, e.svc.DisableTOTP(ctx, "alice", code))

		stored, err := e.storage.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		require.False(t, stored.TOTPEnabled)
		require.Empty(t, stored.TOTPSecret)

		// Login no longer demands a second factor.
		result, err := e.svc.Login(ctx, auth.LoginParams{Username: "alice", Password: "Sup3r$ecret!"})
		require.NoError(t, err)
		require.False(t, result.TwoFactorRequired)
	})

	t.Run("not a bare toggle", func(t *testing.T) {
		t.Parallel()

		e, _ := setup(t)
		require.ErrorIs(t, e.svc.DisableTOTP(context.Background(), "alice", "000000"), auth.ErrInvalidCredentials)

		stored, err := e.storage.FindByUsername(context.Background(), "alice")
		require.NoError(t, err)
		require.True(t, stored.TOTPEnabled)
	})

	t.Run("not enabled", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t)
		_, err := e.svc.Register(context.Background(), "bob", "Sup3r$ecret!", "")
		require.NoError(t, err)

		require.ErrorIs(t, e.svc.DisableTOTP(context.Background(), "bob", "123456"), auth.ErrTOTPNotEnabled)
	})
}

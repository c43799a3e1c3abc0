package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/vaultkit/pkg/auth"
	"github.com/dmitrymomot/vaultkit/pkg/breach"
	"github.com/dmitrymomot/vaultkit/pkg/validator"
)

func TestService_Register(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t)
		user, err := e.svc.Register(context.Background(), "Alice", "Sup3r$ecret!", "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, "alice", user.Username, "username must be normalized")
		require.Equal(t, "alice@example.com", user.Email)
		require.NotEmpty(t, user.PasswordHash)
		require.NotContains(t, user.PasswordHash, "Sup3r$ecret!")
		require.Len(t, user.Salt, 32)
		require.False(t, user.TOTPEnabled)
	})

	t.Run("without email", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t)
		user, err := e.svc.Register(context.Background(), "bob", "Sup3r$ecret!", "")
		require.NoError(t, err)
		require.Empty(t, user.Email)
	})

	t.Run("username taken", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t)
		_, err := e.svc.Register(context.Background(), "carol", "Sup3r$ecret!", "")
		require.NoError(t, err)

		_, err = e.svc.Register(context.Background(), "Carol", "0ther$ecret!", "")
		require.ErrorIs(t, err, auth.ErrUsernameTaken, "case-insensitive uniqueness")
	})

	t.Run("weak password", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t)
		_, err := e.svc.Register(context.Background(), "dave", "short", "")
		require.Error(t, err)

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		require.True(t, verrs.Has("password"))
	})

	t.Run("common password", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t)
		_, err := e.svc.Register(context.Background(), "erin", "Password123", "")
		require.Error(t, err)
	})

	t.Run("invalid username", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t)
		_, err := e.svc.Register(context.Background(), "a b", "Sup3r$ecret!", "")
		require.Error(t, err)
	})

	t.Run("invalid email", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t)
		_, err := e.svc.Register(context.Background(), "frank", "Sup3r$ecret!", "not-an-email")
		require.Error(t, err)
	})

	t.Run("distinct salts per user", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t)
		u1, err := e.svc.Register(context.Background(), "user1", "Sup3r$ecret!", "")
		require.NoError(t, err)
		u2, err := e.svc.Register(context.Background(), "user2", "Sup3r$ecret!", "")
		require.NoError(t, err)
		require.NotEqual(t, u1.Salt, u2.Salt)
		require.NotEqual(t, u1.PasswordHash, u2.PasswordHash)
	})

	t.Run("breached password is advisory only", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t, auth.WithBreachChecker(&staticBreachChecker{
			result: breach.Result{Compromised: true, Count: 100},
		}))
		_, err := e.svc.Register(context.Background(), "grace", "Sup3r$ecret!", "")
		require.NoError(t, err)
	})
}

func TestService_DeleteUser(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t)
		ctx := context.Background()
		_, err := e.svc.Register(ctx, "alice", "Sup3r$ecret!", "")
		require.NoError(t, err)

		require.NoError(t, e.svc.DeleteUser(ctx, "alice", "Sup3r$ecret!"))

		_, err = e.svc.Login(ctx, auth.LoginParams{Username: "alice", Password: "Sup3r$ecret!"})
		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t)
		ctx := context.Background()
		_, err := e.svc.Register(ctx, "bob", "Sup3r$ecret!", "")
		require.NoError(t, err)

		require.ErrorIs(t, e.svc.DeleteUser(ctx, "bob", "wrong"), auth.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t)
		require.ErrorIs(t, e.svc.DeleteUser(context.Background(), "ghost", "whatever"), auth.ErrInvalidCredentials)
	})
}

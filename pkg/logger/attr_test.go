package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/vaultkit/pkg/logger"
)

func TestError(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.Attr{}, logger.Error(nil))

	attr := logger.Error(errors.New("boom"))
	require.Equal(t, "error", attr.Key)
}

func TestErrors(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.Attr{}, logger.Errors(nil, nil))

	attr := logger.Errors(errors.New("a"), nil, errors.New("b"))
	require.Equal(t, "errors", attr.Key)
	require.Len(t, attr.Value.Group(), 2)
}

func TestUserID(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.Attr{}, logger.UserID(nil))

	attr := logger.UserID("abc")
	require.Equal(t, "user_id", attr.Key)
}

func TestSimpleAttrs(t *testing.T) {
	t.Parallel()

	require.Equal(t, "username", logger.Username("alice").Key)
	require.Equal(t, "source", logger.Source("1.2.3.4").Key)
	require.Equal(t, "component", logger.Component("auth").Key)
	require.Equal(t, "event", logger.Event("login").Key)
}

package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/vaultkit/pkg/validator"
)

func TestGeneratePassword(t *testing.T) {
	t.Parallel()

	containsAny := func(s, set string) bool {
		return strings.ContainsAny(s, set)
	}

	t.Run("honors requested length", func(t *testing.T) {
		t.Parallel()

		for _, length := range []int{8, 12, 16, 32, 64} {
			pw, err := validator.GeneratePassword(length)
			require.NoError(t, err)
			require.Len(t, pw, length)
		}
	})

	t.Run("short requests are raised to the minimum", func(t *testing.T) {
		t.Parallel()

		for _, length := range []int{0, 1, 4, 7, -3} {
			pw, err := validator.GeneratePassword(length)
			require.NoError(t, err)
			require.Len(t, pw, validator.MinGeneratedLength)
		}
	})

	t.Run("every character class is represented", func(t *testing.T) {
		t.Parallel()

		for n := 0; n < 50; n++ {
			pw, err := validator.GeneratePassword(validator.DefaultGeneratedLength)
			require.NoError(t, err)
			require.True(t, containsAny(pw, "abcdefghijklmnopqrstuvwxyz"), "no lowercase in %q", pw)
			require.True(t, containsAny(pw, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"), "no uppercase in %q", pw)
			require.True(t, containsAny(pw, "0123456789"), "no digit in %q", pw)
			require.True(t, containsAny(pw, `!@#$%^&*(),.?":{}|<>_`), "no special char in %q", pw)
		}
	})

	t.Run("scores full marks", func(t *testing.T) {
		t.Parallel()

		pw, err := validator.GeneratePassword(validator.DefaultGeneratedLength)
		require.NoError(t, err)
		require.Equal(t, 5, validator.PasswordScore(pw))
	})

	t.Run("successive passwords differ", func(t *testing.T) {
		t.Parallel()

		seen := make(map[string]bool)
		for n := 0; n < 20; n++ {
			pw, err := validator.GeneratePassword(validator.DefaultGeneratedLength)
			require.NoError(t, err)
			require.False(t, seen[pw], "duplicate password %q", pw)
			seen[pw] = true
		}
	})
}

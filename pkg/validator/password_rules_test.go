package validator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/vaultkit/pkg/validator"
)

func TestStrongPassword(t *testing.T) {
	t.Parallel()

	policy := validator.DefaultPasswordStrength()

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"strong mixed password", "Correct-Horse7", true},
		{"three classes no special", "Passw0rdy", true},
		{"too short", "Ab1!", false},
		{"only lowercase", "justlowercase", false},
		{"two classes only", "lowercase123", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validator.Apply(validator.StrongPassword("password", tt.password, policy))
			if tt.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestStrongPassword_MaxLength(t *testing.T) {
	t.Parallel()

	policy := validator.PasswordStrengthConfig{MinLength: 8, MaxLength: 16, MinCharClasses: 2}

	require.NoError(t, validator.Apply(validator.StrongPassword("password", "Abcdef123456", policy)))
	require.Error(t, validator.Apply(validator.StrongPassword("password", "Abcdef1234567890X", policy)))
}

func TestNotCommonPassword(t *testing.T) {
	t.Parallel()

	common := []string{"password", "123456", "qwerty", "letmein", "PASSWORD", "Admin"}
	for _, pw := range common {
		require.Error(t, validator.Apply(validator.NotCommonPassword("password", pw)), pw)
	}

	require.NoError(t, validator.Apply(validator.NotCommonPassword("password", "xK9#mQ2$vL5p")))
}

func TestPasswordScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		password string
		score    int
	}{
		{"", 0},
		{"abc", 1},
		{"abcdefgh", 2},
		{"Abcdefgh", 3},
		{"Abcdefg1", 4},
		{"Abcdef1!", 5},
		{"aB1!", 4}, // all classes but short
	}

	for _, tt := range tests {
		require.Equal(t, tt.score, validator.PasswordScore(tt.password), "password %q", tt.password)
	}
}

func TestCheckStrength(t *testing.T) {
	t.Parallel()

	t.Run("full score has no feedback", func(t *testing.T) {
		t.Parallel()

		score, feedback := validator.CheckStrength("Abcdef1!")
		require.Equal(t, 5, score)
		require.Empty(t, feedback)
	})

	t.Run("one hint per missing point", func(t *testing.T) {
		t.Parallel()

		score, feedback := validator.CheckStrength("abcdefgh")
		require.Equal(t, 2, score)
		require.Len(t, feedback, 3)
		require.Contains(t, feedback, "add uppercase letters")
		require.Contains(t, feedback, "add numbers")
		require.Contains(t, feedback, "add special characters")
	})

	t.Run("empty password hints everything", func(t *testing.T) {
		t.Parallel()

		score, feedback := validator.CheckStrength("")
		require.Equal(t, 0, score)
		require.Len(t, feedback, 5)
		require.Contains(t, feedback, "use at least 8 characters")
	})
}

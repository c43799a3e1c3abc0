package validator

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	uppercaseRegex   = regexp.MustCompile(`[A-Z]`)
	lowercaseRegex   = regexp.MustCompile(`[a-z]`)
	digitRegex       = regexp.MustCompile(`[0-9]`)
	specialCharRegex = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?~` + "`" + `]`)

	// Common weak passwords - curated list of frequently compromised passwords
	commonPasswords = map[string]bool{
		"password":    true,
		"123456":      true,
		"password123": true,
		"admin":       true,
		"qwerty":      true,
		"abc123":      true,
		"letmein":     true,
		"welcome":     true,
		"monkey":      true,
		"1234567890":  true,
		"dragon":      true,
		"sunshine":    true,
		"iloveyou":    true,
		"princess":    true,
		"football":    true,
		"password1":   true,
		"qwerty123":   true,
		"12345678":    true,
		"123456789":   true,
		"1234":        true,
		"12345":       true,
		"123123":      true,
		"111111":      true,
		"000000":      true,
		"qwertyuiop":  true,
		"asdfghjkl":   true,
		"zxcvbnm":     true,
		"Password1":   true,
		"Password123": true,
		"admin123":    true,
		"root":        true,
		"guest":       true,
		"test":        true,
		"master":      true,
		"secret":      true,
		"trustno1":    true,
		"superman":    true,
		"batman":      true,
		"1q2w3e4r":    true,
		"1qaz2wsx":    true,
		"654321":      true,
		"abcd1234":    true,
		"123qwe":      true,
		"qwe123":      true,
	}
)

// PasswordStrengthConfig defines password acceptance requirements.
type PasswordStrengthConfig struct {
	MinLength      int
	MaxLength      int
	MinCharClasses int // Minimum number of different character classes required
}

// DefaultPasswordStrength returns the default policy: 8-128 chars, 3+ character classes.
func DefaultPasswordStrength() PasswordStrengthConfig {
	return PasswordStrengthConfig{
		MinLength:      8,
		MaxLength:      128,
		MinCharClasses: 3,
	}
}

// StrongPassword validates a password against the given policy.
func StrongPassword(field, value string, config PasswordStrengthConfig) Rule {
	return Rule{
		Check: func() bool {
			if len(value) < config.MinLength || len(value) > config.MaxLength {
				return false
			}
			return charClasses(value) >= config.MinCharClasses
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("password must be %d-%d characters with at least %d character classes", config.MinLength, config.MaxLength, config.MinCharClasses),
		},
	}
}

// NotCommonPassword rejects passwords from the common-password list.
func NotCommonPassword(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return !commonPasswords[value] && !commonPasswords[strings.ToLower(value)]
		},
		Error: ValidationError{
			Field:   field,
			Message: "password is too common",
		},
	}
}

// CheckStrength rates a password 0-5, one point each for minimum length,
// uppercase, lowercase, digits, and special characters, and returns a hint
// for every missing point.
func CheckStrength(value string) (int, []string) {
	score := 0
	var feedback []string
	if len(value) >= 8 {
		score++
	} else {
		feedback = append(feedback, "use at least 8 characters")
	}
	if uppercaseRegex.MatchString(value) {
		score++
	} else {
		feedback = append(feedback, "add uppercase letters")
	}
	if lowercaseRegex.MatchString(value) {
		score++
	} else {
		feedback = append(feedback, "add lowercase letters")
	}
	if digitRegex.MatchString(value) {
		score++
	} else {
		feedback = append(feedback, "add numbers")
	}
	if specialCharRegex.MatchString(value) {
		score++
	} else {
		feedback = append(feedback, "add special characters")
	}
	return score, feedback
}

// PasswordScore is CheckStrength without the feedback. Stored as an
// informational strength indicator on vault entries.
func PasswordScore(value string) int {
	score, _ := CheckStrength(value)
	return score
}

func charClasses(value string) int {
	classes := 0
	if uppercaseRegex.MatchString(value) {
		classes++
	}
	if lowercaseRegex.MatchString(value) {
		classes++
	}
	if digitRegex.MatchString(value) {
		classes++
	}
	if specialCharRegex.MatchString(value) {
		classes++
	}
	return classes
}

package sanitizer

import (
	"regexp"
	"strings"
)

var (
	dotRegex        = regexp.MustCompile(`\.+`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// TrimToLower trims whitespace and lowercases in one pass.
func TrimToLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeWhitespace collapses runs of whitespace into single spaces.
func NormalizeWhitespace(s string) string {
	normalized := whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(normalized)
}

// NormalizeUsername canonicalizes a login identifier: trimmed and lowercased,
// so lookups are case-insensitive. Format enforcement is the validator's job.
func NormalizeUsername(username string) string {
	return TrimToLower(username)
}

// NormalizeEmail prevents common email input errors but preserves original for invalid formats.
// Consolidates consecutive dots which can cause delivery issues with some email providers.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	email = strings.ToLower(email)

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	local := parts[0]
	domain := parts[1]

	// Consolidate consecutive dots to prevent delivery failures
	local = dotRegex.ReplaceAllString(local, ".")
	local = strings.Trim(local, ".")

	return local + "@" + domain
}

// MaskEmail preserves full domain for user recognition while hiding personal info.
// Used when echoing an address back in reset-flow responses and logs.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return email
	}

	local := parts[0]
	domain := parts[1]

	if len(local) == 0 {
		return email
	}

	if len(local) == 1 {
		return "*@" + domain
	}

	masked := string(local[0]) + strings.Repeat("*", len(local)-1)
	return masked + "@" + domain
}

// NormalizeServiceName canonicalizes a vault entry's service label: trimmed
// with inner whitespace collapsed. Case is preserved for display.
func NormalizeServiceName(service string) string {
	return NormalizeWhitespace(service)
}

package validator

import "regexp"

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.\-]{3,64}$`)
)

// ValidEmail validates basic email address format.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return emailRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid email address",
		},
	}
}

// ValidUsername validates username format: 3-64 chars of letters, digits,
// underscore, dot, or hyphen.
func ValidUsername(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return usernameRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be 3-64 characters of letters, digits, '_', '.' or '-'",
		},
	}
}

// NonEmpty requires a non-empty value.
func NonEmpty(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return value != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "is required",
		},
	}
}

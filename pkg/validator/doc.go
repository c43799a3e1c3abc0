// Package validator provides composable validation rules for credential
// inputs: username and email format, password policy enforcement, a common
// password blocklist, and the 0-5 strength score attached to vault entries.
//
// Rules are applied in bulk and all failures are collected:
//
//	err := validator.Apply(
//	    validator.ValidUsername("username", username),
//	    validator.StrongPassword("password", password, validator.DefaultPasswordStrength()),
//	    validator.NotCommonPassword("password", password),
//	)
//
// A non-nil error is always a ValidationErrors value and is safe to report
// verbatim to callers.
package validator

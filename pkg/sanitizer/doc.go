// Package sanitizer normalizes identity inputs before validation and storage.
//
// Usernames and emails are canonicalized (trimmed, lowercased, dot-collapsed)
// so that equality checks and uniqueness constraints behave predictably, and
// vault service labels get whitespace normalization. Transformations compose:
//
//	clean := sanitizer.Apply(raw, sanitizer.Trim, sanitizer.NormalizeUsername)
//
// Sanitization never rejects input; anything unfixable is left for the
// validator to report.
package sanitizer

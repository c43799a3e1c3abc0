package breach

import "errors"

var (
	// ErrLookupFailed is returned when the range API cannot be reached or
	// returns an unusable response.
	ErrLookupFailed = errors.New("breach lookup failed")
)

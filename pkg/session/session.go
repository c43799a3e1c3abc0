package session

import (
	"time"

	"github.com/google/uuid"
)

// Session represents an authenticated user session. The token is opaque and
// random; all session state lives server-side so sessions can be revoked.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired reports whether the session has passed its expiry. Expiry is
// checked at validation time, not at issuance, so clock skew is handled once
// per read.
func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

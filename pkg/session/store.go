package session

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the interface for session persistence.
type Store interface {
	// Create stores a new session.
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by token. Returns ErrSessionNotFound for
	// unknown tokens.
	Get(ctx context.Context, token string) (*Session, error)

	// Delete removes a session by token. Deleting a missing token is not an
	// error.
	Delete(ctx context.Context, token string) error

	// DeleteByUserID removes all sessions for a specific user.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

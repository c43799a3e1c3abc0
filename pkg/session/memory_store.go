package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements Store with an in-process map. Used in tests and
// single-instance deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	byUser   map[uuid.UUID]map[string]struct{}
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		byUser:   make(map[uuid.UUID]map[string]struct{}),
	}
}

func (s *MemoryStore) Create(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *session
	s.sessions[session.Token] = &cp
	if s.byUser[session.UserID] == nil {
		s.byUser[session.UserID] = make(map[string]struct{})
	}
	s.byUser[session.UserID][session.Token] = struct{}{}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[token]; ok {
		delete(s.sessions, token)
		if tokens := s.byUser[sess.UserID]; tokens != nil {
			delete(tokens, token)
		}
	}
	return nil
}

func (s *MemoryStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for token := range s.byUser[userID] {
		delete(s.sessions, token)
	}
	delete(s.byUser, userID)
	return nil
}

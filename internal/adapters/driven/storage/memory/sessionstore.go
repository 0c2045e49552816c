package memory

import (
	"context"
	"sync"

	"github.com/feds01/cs3099/internal/core/domain"
	"github.com/feds01/cs3099/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore for testing.
type SessionStore struct {
	mu      sync.RWMutex
	session *domain.Session
	saves   int
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Load returns a copy of the stored session.
func (s *SessionStore) Load(_ context.Context) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, domain.ErrNotFound
	}
	session := *s.session
	return &session, nil
}

// Save replaces the stored session.
func (s *SessionStore) Save(_ context.Context, session domain.Session) error {
	if !session.Valid() {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &session
	s.saves++
	return nil
}

// Clear removes the stored session.
func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return domain.ErrNotLoggedIn
	}
	s.session = nil
	return nil
}

// Path returns a placeholder, there is no backing file.
func (s *SessionStore) Path() string {
	return "memory"
}

// Saves returns how many times Save succeeded.
func (s *SessionStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

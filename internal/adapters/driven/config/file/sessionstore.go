package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/feds01/cs3099/internal/core/domain"
	"github.com/feds01/cs3099/internal/core/ports/driven"
	"github.com/feds01/cs3099/internal/logger"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionFile is the credential file name inside the config directory.
const SessionFile = "auth.json"

// SessionStore keeps the login session in a JSON file with restricted
// permissions.
type SessionStore struct {
	mu       sync.Mutex
	filePath string
}

// NewSessionStore creates a session store rooted at configDir.
// If configDir is empty, DefaultDir is used.
func NewSessionStore(configDir string) (*SessionStore, error) {
	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}
	return &SessionStore{filePath: filepath.Join(configDir, SessionFile)}, nil
}

// Load reads the stored session. Any problem reading it is reported as
// domain.ErrNotFound: a broken credential file means "not logged in".
func (s *SessionStore) Load(_ context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("cannot read %s: %v", s.filePath, err)
		}
		return nil, domain.ErrNotFound
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		logger.Warn("ignoring malformed %s: %v", s.filePath, err)
		return nil, domain.ErrNotFound
	}
	if !session.Valid() {
		logger.Warn("ignoring incomplete session in %s", s.filePath)
		return nil, domain.ErrNotFound
	}
	return &session, nil
}

// Save replaces the stored session.
func (s *SessionStore) Save(_ context.Context, session domain.Session) error {
	if !session.Valid() {
		return fmt.Errorf("%w: session requires a username and both tokens", domain.ErrInvalidInput)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return writeFileAtomic(s.filePath, data, 0600)
}

// Clear deletes the credential file.
func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ErrNotLoggedIn
		}
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Path returns the credential file path.
func (s *SessionStore) Path() string {
	return s.filePath
}

package driven

import (
	"context"

	"github.com/feds01/cs3099/internal/core/domain"
)

// SessionStore persists the login session.
// It is the only component that touches the credential file.
type SessionStore interface {
	// Load returns the stored session.
	// Returns domain.ErrNotFound when no usable session is stored,
	// including when the file is unreadable or malformed.
	Load(ctx context.Context) (*domain.Session, error)

	// Save replaces the stored session. A concurrent Load never observes
	// a partially written session.
	Save(ctx context.Context, session domain.Session) error

	// Clear removes the stored session.
	// Returns domain.ErrNotLoggedIn if nothing was stored.
	Clear(ctx context.Context) error

	// Path returns where the session is stored.
	Path() string
}

package driving

import (
	"context"

	"github.com/feds01/cs3099/internal/core/domain"
)

// SessionService manages the login session.
type SessionService interface {
	// Login authenticates with the service and stores the session.
	// Returns domain.ErrLoginFailed when the server rejects the credentials.
	Login(ctx context.Context, username, password string) (*domain.Session, error)

	// Logout removes the stored session.
	// Returns domain.ErrNotLoggedIn if there was none.
	Logout(ctx context.Context) error

	// Resolve refreshes the stored session and returns the identity every
	// authenticated command must use.
	// Returns domain.ErrNotAuthenticated without a stored session and
	// domain.ErrSessionExpired when the refresh token is rejected.
	Resolve(ctx context.Context) (*domain.Identity, error)

	// Current returns the stored session without refreshing it.
	Current(ctx context.Context) (*domain.Session, error)
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/feds01/cs3099/internal/core/domain"
	"github.com/feds01/cs3099/internal/core/ports/driven"
	"github.com/feds01/cs3099/internal/core/ports/driving"
	"github.com/feds01/cs3099/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService turns stored refresh tokens into live identities.
type SessionService struct {
	api       driven.APIClient
	store     driven.SessionStore
	inspector driven.TokenInspector
}

// NewSessionService creates a new session service.
// inspector may be nil, in which case identities carry no expiry.
func NewSessionService(
	api driven.APIClient,
	store driven.SessionStore,
	inspector driven.TokenInspector,
) *SessionService {
	return &SessionService{
		api:       api,
		store:     store,
		inspector: inspector,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Username     string `json:"username"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// tokenResponse is returned by both auth/login and auth/session.
type tokenResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

func (r *tokenResponse) hasTokens() bool {
	return r.Token != "" && r.RefreshToken != ""
}

// Login authenticates with the service and stores the session.
func (s *SessionService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	if s.api == nil || s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	raw, err := s.api.Call(ctx, driven.Request{
		Method: http.MethodPost,
		Path:   "auth/login",
		Body:   loginRequest{Username: username, Password: password},
	})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	var resp tokenResponse
	if err := json.Unmarshal(raw, &resp); err != nil || resp.Status != "ok" || !resp.hasTokens() {
		logger.Debug("login rejected for %s: status=%q", username, resp.Status)
		return nil, withServerMessage(domain.ErrLoginFailed, resp.Message, nil)
	}

	session := domain.Session{
		Username:     username,
		AccessToken:  resp.Token,
		RefreshToken: resp.RefreshToken,
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	logger.Info("logged in as %s, session stored in %s", username, s.store.Path())
	return &session, nil
}

// Logout removes the stored session.
func (s *SessionService) Logout(ctx context.Context) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	return s.store.Clear(ctx)
}

// Current returns the stored session without contacting the service.
func (s *SessionService) Current(ctx context.Context) (*domain.Session, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	session, err := s.store.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNotAuthenticated
	}
	return session, err
}

// Resolve refreshes the stored session and returns the identity to use
// for the rest of the command. The refreshed tokens replace the stored
// ones; a rejected refresh leaves the stored session untouched.
func (s *SessionService) Resolve(ctx context.Context) (*domain.Identity, error) {
	if s.api == nil || s.store == nil {
		return nil, domain.ErrNotImplemented
	}

	session, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	logger.Debug("refreshing session of %s (refresh token %s)", session.Username, logger.Redact(session.RefreshToken))

	raw, err := s.api.Call(ctx, driven.Request{
		Method: http.MethodPost,
		Path:   "auth/session",
		Body: refreshRequest{
			Username:     session.Username,
			Token:        session.AccessToken,
			RefreshToken: session.RefreshToken,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("refresh session: %w", err)
	}

	var resp tokenResponse
	if err := json.Unmarshal(raw, &resp); err != nil || !resp.hasTokens() {
		return nil, withServerMessage(domain.ErrSessionExpired, resp.Message, nil)
	}

	refreshed := domain.Session{
		Username:     session.Username,
		AccessToken:  resp.Token,
		RefreshToken: resp.RefreshToken,
	}
	if err := s.store.Save(ctx, refreshed); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return s.identity(refreshed), nil
}

func (s *SessionService) identity(session domain.Session) *domain.Identity {
	tok := &oauth2.Token{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    "Bearer",
	}
	if s.inspector != nil {
		if exp, ok := s.inspector.Expiry(session.AccessToken); ok {
			tok.Expiry = exp
		}
	}
	if !tok.Expiry.IsZero() && !tok.Valid() {
		logger.Warn("refreshed access token for %s expired at %s", session.Username, tok.Expiry)
	}

	return &domain.Identity{
		Username:   session.Username,
		AuthHeader: tok.Type() + " " + tok.AccessToken,
		ExpiresAt:  tok.Expiry,
	}
}

// withServerMessage attaches the server's explanation to a domain error
// when there is one.
func withServerMessage(sentinel error, message string, details json.RawMessage) error {
	apiErr := &domain.APIError{Message: message, Errors: details}
	if message == "" && apiErr.Details() == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, apiErr)
}

package domain

import "time"

// Session is the persisted login state.
// The access token is always stored together with the refresh token
// that can regenerate it.
type Session struct {
	// Username is the account the tokens belong to.
	Username string `json:"username"`
	// AccessToken is the short-lived bearer token.
	AccessToken string `json:"token"`
	// RefreshToken renews the access token.
	RefreshToken string `json:"refreshToken"`
}

// Valid returns true if the session has a username and both tokens.
func (s *Session) Valid() bool {
	return s != nil && s.Username != "" && s.AccessToken != "" && s.RefreshToken != ""
}

// Identity is derived from a freshly refreshed Session at the start of an
// authenticated command. It is never persisted.
type Identity struct {
	// Username is the logged in account.
	Username string
	// AuthHeader is the full Authorization header value, e.g. "Bearer <token>".
	AuthHeader string
	// ExpiresAt is when the access token expires. Zero when unknown.
	ExpiresAt time.Time
}

// Headers returns the request headers that authenticate as this identity.
func (i *Identity) Headers() map[string]string {
	if i == nil || i.AuthHeader == "" {
		return nil
	}
	return map[string]string{"Authorization": i.AuthHeader}
}

// Package token reads claims from the service's JWT access tokens.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/feds01/cs3099/internal/core/ports/driven"
)

// Ensure Inspector implements the interface.
var _ driven.TokenInspector = (*Inspector)(nil)

// Inspector parses tokens without verifying their signature. The client
// never holds the signing secret; claims are only used for display.
type Inspector struct {
	parser *jwt.Parser
}

// NewInspector creates a token inspector.
func NewInspector() *Inspector {
	return &Inspector{parser: jwt.NewParser()}
}

// Expiry returns the exp claim of token.
func (i *Inspector) Expiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := i.parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

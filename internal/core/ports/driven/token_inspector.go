package driven

import "time"

// TokenInspector reads claims from an access token without verifying it.
// Verification is the server's job; the client only uses the claims for
// display and logging.
type TokenInspector interface {
	// Expiry returns when the token expires.
	// The boolean is false when the token carries no readable expiry.
	Expiry(token string) (time.Time, bool)
}

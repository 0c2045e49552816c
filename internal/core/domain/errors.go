package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates a required collaborator is not configured.
	ErrNotImplemented = errors.New("not implemented")

	// Session Errors.

	// ErrNotAuthenticated indicates no stored session exists.
	// Recoverable by logging in.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionExpired indicates the refresh token was rejected.
	// Recoverable by logging in again.
	ErrSessionExpired = errors.New("session expired")

	// ErrLoginFailed indicates the server refused the credentials.
	ErrLoginFailed = errors.New("login failed")

	// ErrNotLoggedIn indicates logout was requested without a session.
	ErrNotLoggedIn = errors.New("not logged in")

	// Publication Errors.

	// ErrPublicationNotFound indicates an id or name did not resolve.
	ErrPublicationNotFound = errors.New("publication not found")

	// ErrRevisionFailed indicates the server did not create a revision.
	ErrRevisionFailed = errors.New("revision failed")

	// ErrNotArchive indicates an upload source is not a zip container.
	ErrNotArchive = errors.New("file must be a zip file")

	// Configuration Errors.

	// ErrConfigNotFound indicates no configuration file exists.
	ErrConfigNotFound = errors.New("config not found")

	// ErrInvalidConfig indicates the configuration file is malformed.
	ErrInvalidConfig = errors.New("invalid config")
)

// TransportError reports that a request never produced a response:
// DNS failures, refused connections, timeouts.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a response body that is not valid JSON.
type DecodeError struct {
	URL    string
	Status int
	Body   []byte
}

func (e *DecodeError) Error() string {
	snippet := strings.TrimSpace(string(e.Body))
	if len(snippet) > 80 {
		snippet = snippet[:80] + "..."
	}
	return fmt.Sprintf("invalid JSON response from %s (status %d): %q", e.URL, e.Status, snippet)
}

// APIError carries the message and error details a server returned
// alongside a rejected request.
type APIError struct {
	Message string
	Errors  json.RawMessage
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "server returned no message"
	}
	return e.Message
}

// Details renders the server error details, or "" when there are none.
func (e *APIError) Details() string {
	raw := strings.TrimSpace(string(e.Errors))
	if raw == "" || raw == "null" || raw == "{}" {
		return ""
	}
	return raw
}

package driven

import (
	"context"
	"encoding/json"
)

// APIClient issues requests against the publication service.
// It does not interpret response bodies beyond checking they are JSON.
type APIClient interface {
	// Call performs a single request and returns the raw JSON body,
	// whatever the HTTP status.
	// Fails with *domain.TransportError when no response was received and
	// *domain.DecodeError when the body is not valid JSON.
	Call(ctx context.Context, req Request) (json.RawMessage, error)

	// URL resolves a path against the service base URL.
	URL(path string) string
}

// Request describes one API call.
type Request struct {
	// Method is the HTTP method, e.g. http.MethodPost.
	Method string

	// Path is relative to the service base URL, e.g. "auth/login".
	Path string

	// Body is JSON encoded when non-nil. Ignored when Files is set.
	Body any

	// Headers are added to the request.
	Headers map[string]string

	// Files are sent as multipart/form-data parts.
	Files []FilePart
}

// FilePart is a file streamed from disk as one multipart form field.
type FilePart struct {
	// Field is the form field name, e.g. "file".
	Field string
	// Path is the file on disk.
	Path string
	// ContentType defaults to application/octet-stream.
	ContentType string
}

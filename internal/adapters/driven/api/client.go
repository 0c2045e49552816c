// Package api provides the HTTP adapter for the publication service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/feds01/cs3099/internal/core/domain"
	"github.com/feds01/cs3099/internal/core/ports/driven"
	"github.com/feds01/cs3099/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.APIClient = (*Client)(nil)

// DefaultUserAgent identifies pubcli to the service.
const DefaultUserAgent = "pubcli"

// RequestIDHeader carries a unique id per request for server-side tracing.
const RequestIDHeader = "X-Request-ID"

// Client sends one synchronous request per call to the publication service.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	userAgent  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a client for the service rooted at baseURL.
// The base URL is treated as a directory: relative paths are resolved
// beneath it whether or not it ends with a slash.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if err := (domain.Config{BaseURL: baseURL}).Validate(); err != nil {
		return nil, err
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	c := &Client{
		// No client timeout: requests block until the transport gives up.
		httpClient: &http.Client{},
		baseURL:    u,
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// URL resolves path against the base URL.
func (c *Client) URL(path string) string {
	ref := &url.URL{Path: strings.TrimPrefix(path, "/")}
	return c.baseURL.ResolveReference(ref).String()
}

// Call performs req and returns the raw JSON response body.
func (c *Client) Call(ctx context.Context, req driven.Request) (json.RawMessage, error) {
	target := c.URL(req.Path)

	body, contentType, finish, err := c.encodeBody(req)
	if err != nil {
		return nil, err
	}
	defer finish()

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	requestID := uuid.NewString()
	httpReq.Header.Set(RequestIDHeader, requestID)
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	logger.Debug("%s %s (request %s)", req.Method, target, requestID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &domain.TransportError{Method: req.Method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Method: req.Method, URL: target, Err: fmt.Errorf("read response: %w", err)}
	}

	logger.Debug("%s %s -> %d (%d bytes)", req.Method, target, resp.StatusCode, len(data))

	if !json.Valid(data) {
		return nil, &domain.DecodeError{URL: target, Status: resp.StatusCode, Body: data}
	}
	return json.RawMessage(data), nil
}

// encodeBody builds the request body. finish must be called once the
// request has completed; it releases any files opened for the upload.
func (c *Client) encodeBody(req driven.Request) (io.Reader, string, func(), error) {
	if len(req.Files) > 0 {
		return encodeMultipart(req.Files)
	}
	if req.Body == nil {
		return nil, "", func() {}, nil
	}
	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", nil, fmt.Errorf("marshal request: %w", err)
	}
	return bytes.NewReader(data), "application/json", func() {}, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeMultipart streams files through a pipe so archives are never
// buffered in memory. Files are opened up front so a missing file fails
// before anything is sent.
func encodeMultipart(parts []driven.FilePart) (io.Reader, string, func(), error) {
	files := make([]*os.File, 0, len(parts))
	closeFiles := func() {
		for _, f := range files {
			f.Close()
		}
	}
	for _, part := range parts {
		f, err := os.Open(part.Path)
		if err != nil {
			closeFiles()
			return nil, "", nil, fmt.Errorf("open %s: %w", part.Path, err)
		}
		files = append(files, f)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for i, part := range parts {
			contentType := part.ContentType
			if contentType == "" {
				contentType = "application/octet-stream"
			}
			header := make(textproto.MIMEHeader)
			header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
				quoteEscaper.Replace(part.Field), quoteEscaper.Replace(filepath.Base(part.Path))))
			header.Set("Content-Type", contentType)

			w, err := mw.CreatePart(header)
			if err != nil {
				pw.CloseWithError(err)
				return
			}
			if _, err := io.Copy(w, files[i]); err != nil {
				pw.CloseWithError(fmt.Errorf("stream %s: %w", part.Path, err))
				return
			}
		}
		pw.CloseWithError(mw.Close())
	}()

	finish := func() {
		// Unblocks the writer if the transport stopped reading early.
		pr.CloseWithError(errors.New("request finished"))
		<-done
		closeFiles()
	}
	return pr, mw.FormDataContentType(), finish, nil
}

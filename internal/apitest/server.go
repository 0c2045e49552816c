// Package apitest provides a scripted fake of the publication service for
// tests. Routes mirror the endpoints pubcli consumes; responses are queued
// per concrete method and path.
package apitest

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Response is one scripted reply.
type Response struct {
	// Status defaults to 200.
	Status int
	// Body is JSON encoded unless Raw is set.
	Body any
	// Raw is written verbatim, e.g. to simulate a non-JSON error page.
	Raw string
}

// JSON builds a 200 response with body.
func JSON(body any) Response {
	return Response{Body: body}
}

// Request is a request received by the fake server.
type Request struct {
	Method string
	Path   string
	Header http.Header
	// Body is the raw body for non-multipart requests.
	Body []byte
	// Files holds uploaded multipart files keyed by form field.
	Files map[string]File
}

// JSON decodes the recorded body into v.
func (r Request) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// File is an uploaded multipart file.
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Server is a fake publication service.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	scripts   map[string][]Response
	requests  []Request
	recordErr error
}

// NewServer starts a fake service that is closed when t finishes.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{scripts: make(map[string][]Response)}

	r := chi.NewRouter()
	r.Use(s.record)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.serve)
		r.Post("/session", s.serve)
	})
	r.Route("/publication", func(r chi.Router) {
		r.Get("/{key}", s.serve)
		r.Get("/{username}/{name}", s.serve)
		r.Post("/{username}/{name}/revise", s.serve)
	})
	r.Post("/resource/upload/publication/{id}", s.serve)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"status": "error", "message": "route not found"})
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// BaseURL returns the URL to configure clients with.
func (s *Server) BaseURL() string {
	return s.URL + "/"
}

// Handle queues responses for method and path. Responses are consumed in
// order; the last one is repeated once the queue is drained.
func (s *Server) Handle(method, path string, responses ...Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + path
	s.scripts[key] = append(s.scripts[key], responses...)
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Calls returns the requests received for method and path.
func (s *Server) Calls(method, path string) []Request {
	var out []Request
	for _, req := range s.Requests() {
		if req.Method == method && req.Path == path {
			out = append(out, req)
		}
	}
	return out
}

// RecordErr returns the first error met while recording a request body.
func (s *Server) RecordErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recordErr
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := Request{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone()}

		var err error
		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mediaType == "multipart/form-data" {
			rec.Files, err = readFiles(r)
		} else {
			rec.Body, err = io.ReadAll(r.Body)
		}

		s.mu.Lock()
		s.requests = append(s.requests, rec)
		if err != nil && s.recordErr == nil {
			s.recordErr = err
		}
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func readFiles(r *http.Request) (map[string]File, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, err
	}
	files := make(map[string]File)
	for field, headers := range r.MultipartForm.File {
		if len(headers) == 0 {
			continue
		}
		f, err := headers[0].Open()
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		_, err = io.Copy(&buf, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		files[field] = File{
			Filename:    headers[0].Filename,
			ContentType: headers[0].Header.Get("Content-Type"),
			Content:     buf.Bytes(),
		}
	}
	return files, nil
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path

	s.mu.Lock()
	queue := s.scripts[key]
	var resp Response
	found := len(queue) > 0
	if found {
		resp = queue[0]
		if len(queue) > 1 {
			s.scripts[key] = queue[1:]
		}
	}
	s.mu.Unlock()

	if !found {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"status":  "error",
			"message": "no scripted response for " + key,
		})
		return
	}

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	if resp.Raw != "" {
		contentType := "text/plain"
		if strings.HasPrefix(strings.TrimSpace(resp.Raw), "<") {
			contentType = "text/html"
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, resp.Raw)
		return
	}
	writeJSON(w, status, resp.Body)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

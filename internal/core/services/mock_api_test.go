package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/feds01/cs3099/internal/core/domain"
	"github.com/feds01/cs3099/internal/core/ports/driven"
)

// mockAPIClient implements driven.APIClient with scripted replies.
type mockAPIClient struct {
	mu       sync.Mutex
	replies  map[string][]mockReply
	requests []driven.Request
}

type mockReply struct {
	body string
	err  error
}

func newMockAPIClient() *mockAPIClient {
	return &mockAPIClient{replies: make(map[string][]mockReply)}
}

// reply queues a JSON body for method and path.
func (m *mockAPIClient) reply(method, path, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := method + " " + path
	m.replies[key] = append(m.replies[key], mockReply{body: body})
}

// fail queues an error for method and path.
func (m *mockAPIClient) fail(method, path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := method + " " + path
	m.replies[key] = append(m.replies[key], mockReply{err: err})
}

func (m *mockAPIClient) Call(_ context.Context, req driven.Request) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)

	key := req.Method + " " + req.Path
	queue := m.replies[key]
	if len(queue) == 0 {
		return nil, fmt.Errorf("unexpected call %s", key)
	}
	m.replies[key] = queue[1:]
	if queue[0].err != nil {
		return nil, queue[0].err
	}
	return json.RawMessage(queue[0].body), nil
}

func (m *mockAPIClient) URL(path string) string {
	return "http://api.test/" + path
}

// calls returns the requests made to method and path.
func (m *mockAPIClient) calls(method, path string) []driven.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []driven.Request
	for _, req := range m.requests {
		if req.Method == method && req.Path == path {
			out = append(out, req)
		}
	}
	return out
}

func (m *mockAPIClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// mockTokenInspector implements driven.TokenInspector.
type mockTokenInspector struct {
	expiry time.Time
}

func (m *mockTokenInspector) Expiry(_ string) (time.Time, bool) {
	return m.expiry, !m.expiry.IsZero()
}

var transportErr = &domain.TransportError{Method: "POST", URL: "http://api.test/", Err: fmt.Errorf("connection refused")}

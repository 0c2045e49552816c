package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feds01/cs3099/internal/core/domain"
)

func testIdentity() *domain.Identity {
	return &domain.Identity{Username: "user", AuthHeader: "Bearer T2"}
}

func TestPublicationService_List(t *testing.T) {
	api := newMockAPIClient()
	api.reply(http.MethodGet, "publication/user",
		`{"status":"ok","publications":[{"id":"p1","title":"Doc","revision":"v1"}]}`)
	service := NewPublicationService(api)

	pubs, err := service.List(context.Background(), testIdentity())

	require.NoError(t, err)
	assert.Equal(t, []domain.PublicationSummary{{ID: "p1", Title: "Doc", Revision: "v1"}}, pubs)

	calls := api.calls(http.MethodGet, "publication/user")
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer T2", calls[0].Headers["Authorization"])
}

func TestPublicationService_List_NotOK(t *testing.T) {
	api := newMockAPIClient()
	api.reply(http.MethodGet, "publication/user", `{"status":"error","message":"User not found"}`)
	service := NewPublicationService(api)

	pubs, err := service.List(context.Background(), testIdentity())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, pubs)
}

func TestPublicationService_Resolve_ByName(t *testing.T) {
	api := newMockAPIClient()
	api.reply(http.MethodGet, "publication/user/trinity", `{"status":"ok","publication":{"id":"p1","name":"trinity"}}`)
	service := NewPublicationService(api)

	ref, err := service.Resolve(context.Background(), testIdentity(), domain.Lookup{Name: "trinity"})

	require.NoError(t, err)
	assert.Equal(t, domain.Reference{ID: "p1", Name: "trinity"}, *ref)
}

func TestPublicationService_Resolve_ByID(t *testing.T) {
	api := newMockAPIClient()
	api.reply(http.MethodGet, "publication/p1", `{"status":"ok","publication":{"id":"p1","name":"trinity"}}`)
	service := NewPublicationService(api)

	ref, err := service.Resolve(context.Background(), testIdentity(), domain.Lookup{ID: "p1"})

	require.NoError(t, err)
	assert.Equal(t, "trinity", ref.Name)
	assert.Len(t, api.calls(http.MethodGet, "publication/p1"), 1)
}

func TestPublicationService_Resolve_NotFound(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"error message", `{"status":"error","message":"Resource not found"}`},
		{"missing name", `{"status":"ok","publication":{"id":"p1"}}`},
		{"missing id", `{"status":"ok","publication":{"name":"trinity"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newMockAPIClient()
			api.reply(http.MethodGet, "publication/p1", tt.body)
			service := NewPublicationService(api)

			ref, err := service.Resolve(context.Background(), testIdentity(), domain.Lookup{ID: "p1"})

			assert.ErrorIs(t, err, domain.ErrPublicationNotFound)
			assert.Nil(t, ref)
		})
	}
}

func TestPublicationService_Resolve_ServerMessage(t *testing.T) {
	api := newMockAPIClient()
	api.reply(http.MethodGet, "publication/user/nope", `{"status":"error","message":"Resource not found"}`)
	service := NewPublicationService(api)

	_, err := service.Resolve(context.Background(), testIdentity(), domain.Lookup{Name: "nope"})

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Resource not found", apiErr.Message)
}

func TestPublicationService_Resolve_InvalidLookup(t *testing.T) {
	api := newMockAPIClient()
	service := NewPublicationService(api)

	_, err := service.Resolve(context.Background(), testIdentity(), domain.Lookup{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = service.Resolve(context.Background(), testIdentity(), domain.Lookup{ID: "p1", Name: "trinity"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 0, api.callCount())
}

func TestPublicationService_Revise(t *testing.T) {
	api := newMockAPIClient()
	api.reply(http.MethodPost, "publication/user/trinity/revise", `{"status":"ok","publication":{"id":"p2","name":"trinity"}}`)
	service := NewPublicationService(api)
	req := domain.RevisionRequest{Revision: "v2", Changelog: "Fixed typos"}

	result, err := service.Revise(context.Background(), testIdentity(), domain.Reference{ID: "p1", Name: "trinity"}, req)

	require.NoError(t, err)
	assert.Equal(t, "p2", result.NewID)
	assert.Equal(t, "v2", result.Revision)
	assert.Equal(t, domain.Reference{ID: "p1", Name: "trinity"}, result.Original)

	calls := api.calls(http.MethodPost, "publication/user/trinity/revise")
	require.Len(t, calls, 1)
	assert.Equal(t, req, calls[0].Body)
}

func TestPublicationService_Revise_Failed(t *testing.T) {
	api := newMockAPIClient()
	api.reply(http.MethodPost, "publication/user/trinity/revise",
		`{"status":"error","message":"Bad request","errors":{"revision":{"message":"Revision already exists"}}}`)
	service := NewPublicationService(api)

	result, err := service.Revise(context.Background(), testIdentity(), domain.Reference{ID: "p1", Name: "trinity"},
		domain.RevisionRequest{Revision: "v1"})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrRevisionFailed)
	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Bad request", apiErr.Message)
	assert.Contains(t, apiErr.Details(), "Revision already exists")
}

func TestPublicationService_Revise_InvalidInput(t *testing.T) {
	api := newMockAPIClient()
	service := NewPublicationService(api)
	ctx := context.Background()

	_, err := service.Revise(ctx, testIdentity(), domain.Reference{ID: "p1"}, domain.RevisionRequest{Revision: "v2"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = service.Revise(ctx, testIdentity(), domain.Reference{ID: "p1", Name: "trinity"}, domain.RevisionRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 0, api.callCount())
}

func TestPublicationService_URL(t *testing.T) {
	service := NewPublicationService(newMockAPIClient())
	assert.Equal(t, "http://api.test/publication/p1", service.URL("p1"))
}

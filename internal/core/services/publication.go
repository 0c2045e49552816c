package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/feds01/cs3099/internal/core/domain"
	"github.com/feds01/cs3099/internal/core/ports/driven"
	"github.com/feds01/cs3099/internal/core/ports/driving"
	"github.com/feds01/cs3099/internal/logger"
)

// Ensure PublicationService implements the interface.
var _ driving.PublicationService = (*PublicationService)(nil)

// PublicationService lists, resolves and revises publications.
type PublicationService struct {
	api driven.APIClient
}

// NewPublicationService creates a new publication service.
func NewPublicationService(api driven.APIClient) *PublicationService {
	return &PublicationService{api: api}
}

type listResponse struct {
	Status       string                      `json:"status"`
	Message      string                      `json:"message"`
	Publications []domain.PublicationSummary `json:"publications"`
}

type publicationResponse struct {
	Message     string          `json:"message"`
	Errors      json.RawMessage `json:"errors"`
	Publication *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"publication"`
}

// List returns the latest revision of each publication owned by identity.
// Returns domain.ErrNotFound when the service reports none.
func (s *PublicationService) List(ctx context.Context, identity *domain.Identity) ([]domain.PublicationSummary, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	if identity == nil {
		return nil, domain.ErrNotAuthenticated
	}

	raw, err := s.api.Call(ctx, driven.Request{
		Method:  http.MethodGet,
		Path:    "publication/" + identity.Username,
		Headers: identity.Headers(),
	})
	if err != nil {
		return nil, fmt.Errorf("list publications: %w", err)
	}

	var resp listResponse
	if err := json.Unmarshal(raw, &resp); err != nil || resp.Status != "ok" {
		return nil, withServerMessage(domain.ErrNotFound, resp.Message, nil)
	}
	logger.Debug("found %d publications for %s", len(resp.Publications), identity.Username)
	return resp.Publications, nil
}

// Resolve looks a publication up by name (scoped to the user) or by id.
// It never returns a partial reference.
func (s *PublicationService) Resolve(
	ctx context.Context,
	identity *domain.Identity,
	lookup domain.Lookup,
) (*domain.Reference, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	if identity == nil {
		return nil, domain.ErrNotAuthenticated
	}
	if err := lookup.Validate(); err != nil {
		return nil, err
	}

	path := "publication/" + lookup.ID
	if lookup.Name != "" {
		path = "publication/" + identity.Username + "/" + lookup.Name
	}

	raw, err := s.api.Call(ctx, driven.Request{
		Method:  http.MethodGet,
		Path:    path,
		Headers: identity.Headers(),
	})
	if err != nil {
		return nil, fmt.Errorf("resolve publication: %w", err)
	}

	var resp publicationResponse
	if err := json.Unmarshal(raw, &resp); err != nil ||
		resp.Publication == nil || resp.Publication.ID == "" || resp.Publication.Name == "" {
		return nil, withServerMessage(domain.ErrPublicationNotFound, resp.Message, resp.Errors)
	}

	ref := &domain.Reference{ID: resp.Publication.ID, Name: resp.Publication.Name}
	logger.Debug("resolved publication %s", ref)
	return ref, nil
}

// Revise creates a new revision of ref and returns the id of the
// publication that represents it.
func (s *PublicationService) Revise(
	ctx context.Context,
	identity *domain.Identity,
	ref domain.Reference,
	req domain.RevisionRequest,
) (*domain.RevisionResult, error) {
	if s.api == nil {
		return nil, domain.ErrNotImplemented
	}
	if identity == nil {
		return nil, domain.ErrNotAuthenticated
	}
	if !ref.Complete() {
		return nil, fmt.Errorf("%w: publication reference must be resolved", domain.ErrInvalidInput)
	}
	if req.Revision == "" {
		return nil, fmt.Errorf("%w: revision is required", domain.ErrInvalidInput)
	}

	raw, err := s.api.Call(ctx, driven.Request{
		Method:  http.MethodPost,
		Path:    "publication/" + identity.Username + "/" + ref.Name + "/revise",
		Body:    req,
		Headers: identity.Headers(),
	})
	if err != nil {
		return nil, fmt.Errorf("revise publication: %w", err)
	}

	var resp publicationResponse
	if err := json.Unmarshal(raw, &resp); err != nil || resp.Publication == nil || resp.Publication.ID == "" {
		return nil, withServerMessage(domain.ErrRevisionFailed, resp.Message, resp.Errors)
	}

	logger.Info("revision %s of %s created as %s", req.Revision, ref, resp.Publication.ID)
	return &domain.RevisionResult{
		Original: ref,
		NewID:    resp.Publication.ID,
		Revision: req.Revision,
	}, nil
}

// URL returns the public link of a publication.
func (s *PublicationService) URL(id string) string {
	if s.api == nil {
		return ""
	}
	return s.api.URL("publication/" + id)
}

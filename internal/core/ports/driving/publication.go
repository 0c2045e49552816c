package driving

import (
	"context"

	"github.com/feds01/cs3099/internal/core/domain"
)

// PublicationService reads and revises publications.
type PublicationService interface {
	// List returns the latest revision of each publication of the user.
	List(ctx context.Context, identity *domain.Identity) ([]domain.PublicationSummary, error)

	// Resolve turns a user supplied id or name into a complete reference.
	// Returns domain.ErrPublicationNotFound when the server does not know it.
	Resolve(ctx context.Context, identity *domain.Identity, lookup domain.Lookup) (*domain.Reference, error)

	// Revise creates a new revision of ref.
	// Returns domain.ErrRevisionFailed when the server does not create one.
	Revise(
		ctx context.Context,
		identity *domain.Identity,
		ref domain.Reference,
		req domain.RevisionRequest,
	) (*domain.RevisionResult, error)

	// URL returns the public link of a publication.
	URL(id string) string
}

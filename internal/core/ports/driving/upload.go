package driving

import (
	"context"

	"github.com/feds01/cs3099/internal/core/domain"
)

// UploadService uploads publication archives, creating a revision when
// the target publication is no longer a draft.
type UploadService interface {
	// Upload sends file to ref. When the server reports the sources are
	// immutable, prompter decides whether a revision is created and the
	// upload retried once against it.
	Upload(
		ctx context.Context,
		identity *domain.Identity,
		ref domain.Reference,
		file string,
		prompter RevisionPrompter,
	) (*domain.UploadResult, error)
}

// RevisionPrompter is supplied by the caller of UploadService to decide
// how to proceed when an upload targets immutable sources.
type RevisionPrompter interface {
	// ConfirmRevision asks whether a new revision should be created.
	// Returning false aborts the upload cleanly.
	ConfirmRevision(ctx context.Context, ref domain.Reference, conflict domain.UploadOutcome) (bool, error)

	// RevisionDetails collects the revision label and changelog.
	RevisionDetails(ctx context.Context, ref domain.Reference) (domain.RevisionRequest, error)
}

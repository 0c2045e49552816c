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

// Ensure UploadService implements the interface.
var _ driving.UploadService = (*UploadService)(nil)

const (
	uploadField        = "file"
	archiveContentType = "application/zip"
)

// UploadService runs the upload/revise workflow:
//
//	uploading -> done
//	uploading -> needs_revision -> revising -> uploading (new id) -> done
//
// The upload is retried at most once, against the new revision.
type UploadService struct {
	api          driven.APIClient
	publications driving.PublicationService
}

// NewUploadService creates a new upload service.
func NewUploadService(api driven.APIClient, publications driving.PublicationService) *UploadService {
	return &UploadService{
		api:          api,
		publications: publications,
	}
}

type uploadResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

// fileErrors is decoded separately so that an unexpected errors payload
// reads as "no file error code" instead of failing the whole response.
type fileErrors struct {
	File *struct {
		Code    *int   `json:"code"`
		Message string `json:"message"`
	} `json:"file"`
}

// Upload sends file to ref, revising the publication when its sources are
// immutable and the prompter agrees.
func (s *UploadService) Upload(
	ctx context.Context,
	identity *domain.Identity,
	ref domain.Reference,
	file string,
	prompter driving.RevisionPrompter,
) (*domain.UploadResult, error) {
	if s.api == nil || s.publications == nil {
		return nil, domain.ErrNotImplemented
	}
	if identity == nil {
		return nil, domain.ErrNotAuthenticated
	}
	if !ref.Complete() {
		return nil, fmt.Errorf("%w: publication reference must be resolved", domain.ErrInvalidInput)
	}
	if err := ValidateArchive(file); err != nil {
		return nil, err
	}

	logger.Section("Upload " + ref.String())
	run := &uploadRun{ref: ref, state: domain.StateUploading}

	outcome, err := s.attempt(ctx, identity, ref.ID, file)
	if err != nil {
		return nil, err
	}
	result := &domain.UploadResult{Outcome: outcome, Target: ref}
	if outcome.Kind != domain.OutcomeConflict {
		run.transition(domain.StateDone)
		return result, nil
	}

	run.transition(domain.StateNeedsRevision)
	if prompter == nil {
		logger.Debug("no prompter, not creating a revision")
		result.Declined = true
		run.transition(domain.StateDone)
		return result, nil
	}
	confirmed, err := prompter.ConfirmRevision(ctx, ref, outcome)
	if err != nil {
		return nil, fmt.Errorf("confirm revision: %w", err)
	}
	if !confirmed {
		result.Declined = true
		run.transition(domain.StateDone)
		return result, nil
	}

	run.transition(domain.StateRevising)
	req, err := prompter.RevisionDetails(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("revision details: %w", err)
	}
	revision, err := s.publications.Revise(ctx, identity, ref, req)
	if err != nil {
		return nil, err
	}
	result.Revision = revision
	result.Target = domain.Reference{ID: revision.NewID, Name: ref.Name}

	run.transition(domain.StateUploading)
	outcome, err = s.attempt(ctx, identity, revision.NewID, file)
	if err != nil {
		return nil, fmt.Errorf("upload to revision %s: %w", revision.NewID, err)
	}
	if outcome.Kind == domain.OutcomeConflict {
		// A fresh revision should accept sources; a second conflict is
		// reported rather than revised again.
		outcome = domain.UploadFailed(conflictMessage(outcome))
	}
	result.Outcome = outcome
	run.transition(domain.StateDone)
	return result, nil
}

// attempt uploads file once and interprets the response.
func (s *UploadService) attempt(
	ctx context.Context,
	identity *domain.Identity,
	id string,
	file string,
) (domain.UploadOutcome, error) {
	raw, err := s.api.Call(ctx, driven.Request{
		Method:  http.MethodPost,
		Path:    "resource/upload/publication/" + id,
		Headers: identity.Headers(),
		Files: []driven.FilePart{
			{Field: uploadField, Path: file, ContentType: archiveContentType},
		},
	})
	if err != nil {
		return domain.UploadOutcome{}, fmt.Errorf("upload: %w", err)
	}

	var resp uploadResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return domain.UploadFailed("unexpected upload response"), nil
	}
	return interpretUpload(resp, s.publications.URL(id)), nil
}

func interpretUpload(resp uploadResponse, publicationURL string) domain.UploadOutcome {
	if resp.Status == "ok" {
		return domain.UploadSucceeded(publicationURL)
	}

	var errs fileErrors
	if len(resp.Errors) > 0 {
		if err := json.Unmarshal(resp.Errors, &errs); err != nil {
			logger.Debug("ignoring unexpected upload errors payload: %v", err)
		}
	}
	if errs.File == nil || errs.File.Code == nil {
		return domain.UploadFailed(firstNonEmpty(resp.Message, "upload failed"))
	}

	code := *errs.File.Code
	if code == domain.ConflictCodeArchiveExists {
		return domain.UploadConflicted(errs.File.Message, code, resp.Message)
	}
	return domain.UploadFailed(firstNonEmpty(resp.Message, errs.File.Message, fmt.Sprintf("upload failed with code %d", code)))
}

func conflictMessage(o domain.UploadOutcome) string {
	return firstNonEmpty(o.Reason, o.Message, "publication sources are immutable")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// uploadRun tracks the workflow state for logging.
type uploadRun struct {
	ref   domain.Reference
	state domain.UploadState
}

func (r *uploadRun) transition(next domain.UploadState) {
	logger.Debug("upload %s: %s -> %s", r.ref, r.state, next)
	r.state = next
}

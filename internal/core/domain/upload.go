package domain

// ConflictCodeArchiveExists is the server error code reported when the
// sources of a non-draft publication are already uploaded.
const ConflictCodeArchiveExists = 100

// OutcomeKind discriminates UploadOutcome.
type OutcomeKind string

// Upload outcome kinds.
const (
	OutcomeSuccess  OutcomeKind = "success"
	OutcomeConflict OutcomeKind = "conflict"
	OutcomeFailure  OutcomeKind = "failure"
)

// UploadOutcome is the interpreted result of a single upload attempt.
type UploadOutcome struct {
	Kind OutcomeKind

	// PublicationURL is set for OutcomeSuccess.
	PublicationURL string

	// Reason and Code are set for OutcomeConflict.
	Reason string
	Code   int

	// Message is the server message, set for OutcomeFailure and
	// usually for OutcomeConflict.
	Message string
}

// UploadSucceeded builds a success outcome.
func UploadSucceeded(publicationURL string) UploadOutcome {
	return UploadOutcome{Kind: OutcomeSuccess, PublicationURL: publicationURL}
}

// UploadConflicted builds a conflict outcome.
func UploadConflicted(reason string, code int, message string) UploadOutcome {
	return UploadOutcome{Kind: OutcomeConflict, Reason: reason, Code: code, Message: message}
}

// UploadFailed builds a failure outcome.
func UploadFailed(message string) UploadOutcome {
	return UploadOutcome{Kind: OutcomeFailure, Message: message}
}

// Succeeded returns true for OutcomeSuccess.
func (o UploadOutcome) Succeeded() bool {
	return o.Kind == OutcomeSuccess
}

// UploadState is a state of the upload/revise workflow.
type UploadState string

// Upload workflow states.
const (
	StateUploading     UploadState = "uploading"
	StateNeedsRevision UploadState = "needs_revision"
	StateRevising      UploadState = "revising"
	StateDone          UploadState = "done"
)

// UploadResult is the final report of the upload/revise workflow.
type UploadResult struct {
	// Outcome is the result of the last upload attempt. When Declined is
	// true it is the conflict that prompted the revision question.
	Outcome UploadOutcome

	// Target is the publication the last upload was sent to.
	Target Reference

	// Revision is set when a revision was created along the way.
	Revision *RevisionResult

	// Declined is true when the user chose not to create a revision.
	Declined bool
}

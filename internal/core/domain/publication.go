package domain

import "fmt"

// Reference is a resolved, canonical pointer to a publication.
type Reference struct {
	ID   string
	Name string
}

// Complete returns true if both the id and the name are known.
func (r *Reference) Complete() bool {
	return r != nil && r.ID != "" && r.Name != ""
}

// String formats the reference as name(id).
func (r Reference) String() string {
	return fmt.Sprintf("%s(%s)", r.Name, r.ID)
}

// Lookup is the identifier a user supplied for a publication.
// Exactly one of ID and Name is set.
type Lookup struct {
	ID   string
	Name string
}

// Validate checks that exactly one identifier is present.
func (l Lookup) Validate() error {
	switch {
	case l.ID == "" && l.Name == "":
		return fmt.Errorf("%w: publication id or name is required", ErrInvalidInput)
	case l.ID != "" && l.Name != "":
		return fmt.Errorf("%w: publication id and name are mutually exclusive", ErrInvalidInput)
	}
	return nil
}

// PublicationSummary is one entry of a user's publication listing.
type PublicationSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Revision string `json:"revision"`
}

// RevisionRequest describes a new revision of a publication.
type RevisionRequest struct {
	// Revision is the label of the new revision, e.g. "v2".
	Revision string `json:"revision"`
	// Changelog describes what changed since the previous revision.
	Changelog string `json:"changelog"`
}

// RevisionResult is the outcome of a successful revise call.
type RevisionResult struct {
	// Original is the publication that was revised.
	Original Reference
	// NewID is the id of the publication representing the new revision.
	NewID string
	// Revision is the label that was created.
	Revision string
}

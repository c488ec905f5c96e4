package editorial

// Request/Response DTOs

// CreateContentRequest contains parameters for creating new content.
// Slug is optional; when empty it is generated from Title. CreatedBy is
// the opaque caller identifier from the authentication layer.
type CreateContentRequest struct {
	Type      ContentType
	Slug      string
	Title     string
	Blocks    []Block
	SEO       SEOMetadata
	Category  string
	Tags      []string
	Excerpt   string
	SKU       string
	CreatedBy string
}

// UpdateContentRequest contains parameters for a partial update. A nil
// TargetStatus means "keep the current status" (which still branches a
// new draft when the latest row is published).
type UpdateContentRequest struct {
	Slug         string
	Patch        Patch
	TargetStatus *ContentStatus
	UpdatedBy    string
}

// ListContentRequest contains parameters for listing the latest version
// of each lineage.
type ListContentRequest struct {
	Type   *ContentType
	Status *ContentStatus
	Limit  int
	Offset int
}

// TransitionResult is the outcome of a write transition. Revalidated
// reports whether the transition triggered a revalidation dispatch; the
// dispatch itself is asynchronous and best-effort.
type TransitionResult struct {
	Content     *ContentEntity `json:"content"`
	Revalidated bool           `json:"revalidated"`
}

// DeleteResult reports the removal of an entire lineage.
type DeleteResult struct {
	Slug                string `json:"slug"`
	DeletedVersionCount int    `json:"deleted_version_count"`
	Revalidated         bool   `json:"revalidated"`
}

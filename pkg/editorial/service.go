package editorial

import "context"

// Service is the transactional surface of the content versioning state
// machine. Every write runs one full load-compute-persist transition;
// once the store write succeeds the transition is final.
type Service interface {
	// CreateContent starts a new lineage as (slug, version=1, draft).
	CreateContent(ctx context.Context, req CreateContentRequest) (*ContentEntity, error)

	// GetContent returns the latest version for slug.
	GetContent(ctx context.Context, slug string) (*ContentEntity, error)

	// GetContentVersion returns one specific version.
	GetContentVersion(ctx context.Context, slug string, version int) (*ContentEntity, error)

	// ListVersions returns the full lineage, version ascending.
	ListVersions(ctx context.Context, slug string) ([]*ContentEntity, error)

	// ListContent returns the latest version of each matching lineage.
	ListContent(ctx context.Context, req ListContentRequest) ([]*ContentEntity, error)

	// UpdateContent runs the full state-machine transition for a
	// partial update with an optional target status.
	UpdateContent(ctx context.Context, req UpdateContentRequest) (*TransitionResult, error)

	// PublishContent is UpdateContent with target status published and
	// no field changes.
	PublishContent(ctx context.Context, slug, updatedBy string) (*TransitionResult, error)

	// UnpublishContent demotes a published latest row back to draft in
	// place, retaining PublishedAt. Unpublishing a latest row that is
	// not published is an idempotent no-op.
	UnpublishContent(ctx context.Context, slug, updatedBy string) (*TransitionResult, error)

	// ArchiveContent flips the latest row to archived in place,
	// whatever its current status. Already-archived rows are a no-op.
	ArchiveContent(ctx context.Context, slug, updatedBy string) (*TransitionResult, error)

	// DeleteContent removes the entire lineage. Irreversible.
	DeleteContent(ctx context.Context, slug string) (*DeleteResult, error)
}

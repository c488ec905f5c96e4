package editorial

import "context"

// Repository is the persistence contract for content lineages. Rows are
// keyed by (slug, version); versions are contiguous per slug, starting
// at 1, and the highest version is the lineage's latest row.
type Repository interface {
	// GetLatest returns the highest-versioned row for slug, or ErrNotFound.
	GetLatest(ctx context.Context, slug string) (*ContentEntity, error)

	// GetVersion returns one specific row, or ErrNotFound.
	GetVersion(ctx context.Context, slug string, version int) (*ContentEntity, error)

	// ListVersions returns every row of a lineage ordered by version
	// ascending. A missing lineage yields an empty slice, not an error.
	ListVersions(ctx context.Context, slug string) ([]*ContentEntity, error)

	// ListLatest returns the latest row of each lineage matching the
	// filters, most recently updated first.
	ListLatest(ctx context.Context, filters ListFilters) ([]*ContentEntity, error)

	// Insert stores a new row. It fails with ErrConflict when the
	// (slug, version) pair already exists; this is the cross-process
	// backstop against racing writers.
	Insert(ctx context.Context, entity *ContentEntity) error

	// UpdateInPlace replaces the row identified by (slug, version) with
	// entity, failing with ErrNotFound when no such row exists. When
	// entity.Slug differs from slug the lineage is re-keyed; the store
	// fails with ErrConflict if the target slug is already taken.
	UpdateInPlace(ctx context.Context, slug string, version int, entity *ContentEntity) error

	// DeleteLineage removes every row for slug and returns the number
	// of rows removed. Removing a missing lineage yields 0, not an error.
	DeleteLineage(ctx context.Context, slug string) (int, error)
}

// ListFilters narrows ListLatest results.
type ListFilters struct {
	Type   *ContentType
	Status *ContentStatus
	Limit  *int
	Offset *int
}

// RevalidationNotifier is told, after a transition has committed, that
// the externally visible published output for a slug changed. Calls are
// best-effort: failures are logged and never roll back the write.
type RevalidationNotifier interface {
	Notify(ctx context.Context, slug string, authorID string) error
}

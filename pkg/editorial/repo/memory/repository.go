package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/draftpress/editorial/pkg/editorial"
)

// Repository implements editorial.Repository using in-memory storage.
// Lineages are held as version-ascending slices keyed by slug.
type Repository struct {
	mu       sync.RWMutex
	lineages map[string][]*editorial.ContentEntity
}

// New creates a new in-memory repository
func New() editorial.Repository {
	return &Repository{
		lineages: make(map[string][]*editorial.ContentEntity),
	}
}

func (r *Repository) GetLatest(ctx context.Context, slug string) (*editorial.ContentEntity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions := r.lineages[slug]
	if len(versions) == 0 {
		return nil, editorial.ErrNotFound
	}

	// Return a copy to prevent external modifications
	return versions[len(versions)-1].Clone(), nil
}

func (r *Repository) GetVersion(ctx context.Context, slug string, version int) (*editorial.ContentEntity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.lineages[slug] {
		if e.Version == version {
			return e.Clone(), nil
		}
	}
	return nil, editorial.ErrNotFound
}

func (r *Repository) ListVersions(ctx context.Context, slug string) ([]*editorial.ContentEntity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions := r.lineages[slug]
	result := make([]*editorial.ContentEntity, 0, len(versions))
	for _, e := range versions {
		result = append(result, e.Clone())
	}
	return result, nil
}

func (r *Repository) ListLatest(ctx context.Context, filters editorial.ListFilters) ([]*editorial.ContentEntity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*editorial.ContentEntity
	for _, versions := range r.lineages {
		if len(versions) == 0 {
			continue
		}
		latest := versions[len(versions)-1]
		if filters.Type != nil && latest.Type != *filters.Type {
			continue
		}
		if filters.Status != nil && latest.Status != *filters.Status {
			continue
		}
		result = append(result, latest.Clone())
	}

	// Sort by updated_at descending
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})

	// Apply limit and offset
	if filters.Offset != nil && *filters.Offset > 0 {
		if *filters.Offset >= len(result) {
			return []*editorial.ContentEntity{}, nil
		}
		result = result[*filters.Offset:]
	}
	if filters.Limit != nil && *filters.Limit > 0 && *filters.Limit < len(result) {
		result = result[:*filters.Limit]
	}

	return result, nil
}

func (r *Repository) Insert(ctx context.Context, entity *editorial.ContentEntity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.lineages[entity.Slug] {
		if e.Version == entity.Version {
			return fmt.Errorf("%w: %s v%d already exists", editorial.ErrConflict, entity.Slug, entity.Version)
		}
	}

	r.lineages[entity.Slug] = append(r.lineages[entity.Slug], entity.Clone())
	sort.Slice(r.lineages[entity.Slug], func(i, j int) bool {
		return r.lineages[entity.Slug][i].Version < r.lineages[entity.Slug][j].Version
	})
	return nil
}

func (r *Repository) UpdateInPlace(ctx context.Context, slug string, version int, entity *editorial.ContentEntity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	versions := r.lineages[slug]
	idx := -1
	for i, e := range versions {
		if e.Version == version {
			idx = i
			break
		}
	}
	if idx < 0 {
		return editorial.ErrNotFound
	}

	if entity.Slug != slug {
		// Re-key the lineage under its new slug.
		if len(r.lineages[entity.Slug]) > 0 {
			return fmt.Errorf("%w: slug %q already in use", editorial.ErrConflict, entity.Slug)
		}
		moved := make([]*editorial.ContentEntity, len(versions))
		for i, e := range versions {
			c := e.Clone()
			c.Slug = entity.Slug
			moved[i] = c
		}
		moved[idx] = entity.Clone()
		delete(r.lineages, slug)
		r.lineages[entity.Slug] = moved
		return nil
	}

	versions[idx] = entity.Clone()
	return nil
}

func (r *Repository) DeleteLineage(ctx context.Context, slug string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := len(r.lineages[slug])
	delete(r.lineages, slug)
	return count, nil
}

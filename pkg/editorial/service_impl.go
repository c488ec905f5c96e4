package editorial

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repository Repository
	notifier   RevalidationNotifier
	hooks      *Hooks
	clock      func() time.Time
	notifyWait time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithNotifier sets the revalidation notifier for the service
func WithNotifier(n RevalidationNotifier) Option {
	return func(s *service) {
		s.notifier = n
	}
}

// WithHooks sets the lifecycle hooks for the service
func WithHooks(h *Hooks) Option {
	return func(s *service) {
		if h != nil {
			s.hooks = h
		}
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *service) {
		s.clock = clock
	}
}

// WithNotifyTimeout bounds each asynchronous revalidation dispatch.
func WithNotifyTimeout(d time.Duration) Option {
	return func(s *service) {
		s.notifyWait = d
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		notifier:   NewNoopNotifier(),
		hooks:      &Hooks{},
		clock:      func() time.Time { return time.Now().UTC() },
		notifyWait: 10 * time.Second,
		locks:      make(map[string]*sync.Mutex),
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}

	return s, nil
}

// lockSlug serializes load-compute-persist per lineage. The store-level
// (slug, version) conflict check remains the backstop for writers in
// other processes.
func (s *service) lockSlug(slug string) func() {
	s.mu.Lock()
	l, ok := s.locks[slug]
	if !ok {
		l = &sync.Mutex{}
		s.locks[slug] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// releaseSlug drops the lock entry for a lineage that no longer exists,
// so the map does not accumulate entries for deleted slugs. A goroutine
// still waiting on the old mutex simply finds the lineage gone.
func (s *service) releaseSlug(slug string) {
	s.mu.Lock()
	delete(s.locks, slug)
	s.mu.Unlock()
}

// maybeRevalidate dispatches the notifier without blocking the write
// path. The returned flag reports whether a dispatch was triggered, not
// whether it succeeded; failures are logged and never surfaced.
func (s *service) maybeRevalidate(changed bool, slug, authorID string) bool {
	if !changed || s.notifier == nil {
		return false
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.notifyWait)
		defer cancel()
		if err := s.notifier.Notify(ctx, slug, authorID); err != nil {
			slog.Warn("revalidation failed", "slug", slug, "error", err)
		}
	}()
	return true
}

func (s *service) CreateContent(ctx context.Context, req CreateContentRequest) (*ContentEntity, error) {
	if !req.Type.IsValid() {
		return nil, &ValidationError{Field: "type", Reason: fmt.Sprintf("unsupported content type %q", req.Type)}
	}
	if req.Title == "" {
		return nil, &ValidationError{Field: "title", Reason: "title is required"}
	}

	slug := req.Slug
	if slug == "" {
		slug = GenerateSlug(req.Title)
	}
	if err := ValidateSlug(slug); err != nil {
		return nil, &ValidationError{Field: "slug", Reason: err.Error()}
	}

	if err := s.hooks.executeBeforeContentCreate(ctx, &req); err != nil {
		return nil, err
	}

	unlock := s.lockSlug(slug)
	defer unlock()

	now := s.clock()
	entity := &ContentEntity{
		ID:        uuid.New(),
		Slug:      slug,
		Type:      req.Type,
		Version:   1,
		Status:    ContentStatusDraft,
		Title:     req.Title,
		Blocks:    req.Blocks,
		SEO:       req.SEO,
		ReadTime:  ComputeReadTime(req.Blocks, DefaultWordsPerMinute),
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: req.CreatedBy,
		UpdatedBy: req.CreatedBy,
	}
	switch req.Type {
	case ContentTypeBlog:
		entity.Category = req.Category
		entity.Tags = req.Tags
		entity.Excerpt = req.Excerpt
	case ContentTypeProduct:
		entity.Category = req.Category
		entity.SKU = req.SKU
	}

	if err := s.repository.Insert(ctx, entity); err != nil {
		s.hooks.executeOnError(ctx, "create", err)
		return nil, &TransitionError{Slug: slug, Op: "create", Err: err}
	}

	if err := s.hooks.executeAfterContentCreate(ctx, entity); err != nil {
		slog.Warn("after-create hook failed", "slug", slug, "error", err)
	}

	return entity, nil
}

func (s *service) GetContent(ctx context.Context, slug string) (*ContentEntity, error) {
	return s.repository.GetLatest(ctx, slug)
}

func (s *service) GetContentVersion(ctx context.Context, slug string, version int) (*ContentEntity, error) {
	return s.repository.GetVersion(ctx, slug, version)
}

func (s *service) ListVersions(ctx context.Context, slug string) ([]*ContentEntity, error) {
	versions, err := s.repository.ListVersions(ctx, slug)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, ErrNotFound
	}
	return versions, nil
}

func (s *service) ListContent(ctx context.Context, req ListContentRequest) ([]*ContentEntity, error) {
	filters := ListFilters{
		Type:   req.Type,
		Status: req.Status,
	}
	if req.Limit > 0 {
		filters.Limit = &req.Limit
	}
	if req.Offset > 0 {
		filters.Offset = &req.Offset
	}
	return s.repository.ListLatest(ctx, filters)
}

func (s *service) UpdateContent(ctx context.Context, req UpdateContentRequest) (*TransitionResult, error) {
	unlock := s.lockSlug(req.Slug)
	defer unlock()

	latest, err := s.repository.GetLatest(ctx, req.Slug)
	if err != nil {
		return nil, err
	}

	if err := s.hooks.executeBeforeContentUpdate(ctx, latest, &req); err != nil {
		return nil, err
	}

	plan, err := planUpdate(latest, req.Patch, req.TargetStatus, req.UpdatedBy, s.clock())
	if err != nil {
		return nil, err
	}

	// A slug re-key must not collide with another lineage.
	if plan.kind == transitionUpdateInPlace && plan.next.Slug != latest.Slug {
		if _, err := s.repository.GetLatest(ctx, plan.next.Slug); err == nil {
			return nil, &TransitionError{
				Slug: req.Slug,
				Op:   "update",
				Err:  fmt.Errorf("%w: slug %q already in use", ErrConflict, plan.next.Slug),
			}
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	if err := s.persist(ctx, latest, plan); err != nil {
		s.hooks.executeOnError(ctx, "update", err)
		return nil, &TransitionError{Slug: req.Slug, Op: "update", Err: err}
	}

	if latest.Status != plan.next.Status {
		if err := s.hooks.executeOnStatusChange(ctx, plan.next.Slug, latest.Status, plan.next.Status); err != nil {
			slog.Warn("status-change hook failed", "slug", plan.next.Slug, "error", err)
		}
	}
	if err := s.hooks.executeAfterContentUpdate(ctx, plan.next); err != nil {
		slog.Warn("after-update hook failed", "slug", plan.next.Slug, "error", err)
	}

	revalidated := s.maybeRevalidate(plan.revalidates, plan.next.Slug, req.UpdatedBy)
	return &TransitionResult{Content: plan.next, Revalidated: revalidated}, nil
}

func (s *service) persist(ctx context.Context, latest *ContentEntity, plan *transitionPlan) error {
	if plan.kind == transitionBranch {
		return s.repository.Insert(ctx, plan.next)
	}
	return s.repository.UpdateInPlace(ctx, latest.Slug, plan.prevVersion, plan.next)
}

func (s *service) PublishContent(ctx context.Context, slug, updatedBy string) (*TransitionResult, error) {
	target := ContentStatusPublished
	return s.UpdateContent(ctx, UpdateContentRequest{
		Slug:         slug,
		TargetStatus: &target,
		UpdatedBy:    updatedBy,
	})
}

func (s *service) UnpublishContent(ctx context.Context, slug, updatedBy string) (*TransitionResult, error) {
	unlock := s.lockSlug(slug)
	defer unlock()

	latest, err := s.repository.GetLatest(ctx, slug)
	if err != nil {
		return nil, err
	}

	if !latest.IsPublished() {
		// Idempotent: the latest row is already off the published path.
		return &TransitionResult{Content: latest}, nil
	}

	next := latest.Clone()
	next.Status = ContentStatusDraft // PublishedAt retained
	next.UpdatedAt = s.clock()
	next.UpdatedBy = updatedBy

	if err := s.repository.UpdateInPlace(ctx, slug, latest.Version, next); err != nil {
		s.hooks.executeOnError(ctx, "unpublish", err)
		return nil, &TransitionError{Slug: slug, Op: "unpublish", Err: err}
	}

	if err := s.hooks.executeOnStatusChange(ctx, slug, latest.Status, next.Status); err != nil {
		slog.Warn("status-change hook failed", "slug", slug, "error", err)
	}

	revalidated := s.maybeRevalidate(true, slug, updatedBy)
	return &TransitionResult{Content: next, Revalidated: revalidated}, nil
}

func (s *service) ArchiveContent(ctx context.Context, slug, updatedBy string) (*TransitionResult, error) {
	unlock := s.lockSlug(slug)
	defer unlock()

	latest, err := s.repository.GetLatest(ctx, slug)
	if err != nil {
		return nil, err
	}

	if latest.Status == ContentStatusArchived {
		return &TransitionResult{Content: latest}, nil
	}

	wasPublished := latest.IsPublished()
	next := latest.Clone()
	next.Status = ContentStatusArchived
	next.UpdatedAt = s.clock()
	next.UpdatedBy = updatedBy

	if err := s.repository.UpdateInPlace(ctx, slug, latest.Version, next); err != nil {
		s.hooks.executeOnError(ctx, "archive", err)
		return nil, &TransitionError{Slug: slug, Op: "archive", Err: err}
	}

	if err := s.hooks.executeOnStatusChange(ctx, slug, latest.Status, next.Status); err != nil {
		slog.Warn("status-change hook failed", "slug", slug, "error", err)
	}

	revalidated := s.maybeRevalidate(wasPublished, slug, updatedBy)
	return &TransitionResult{Content: next, Revalidated: revalidated}, nil
}

func (s *service) DeleteContent(ctx context.Context, slug string) (*DeleteResult, error) {
	unlock := s.lockSlug(slug)
	defer unlock()

	latest, err := s.repository.GetLatest(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := s.hooks.executeBeforeContentDelete(ctx, slug); err != nil {
		return nil, err
	}

	count, err := s.repository.DeleteLineage(ctx, slug)
	if err != nil {
		s.hooks.executeOnError(ctx, "delete", err)
		return nil, &TransitionError{Slug: slug, Op: "delete", Err: err}
	}
	s.releaseSlug(slug)

	if err := s.hooks.executeAfterContentDelete(ctx, slug); err != nil {
		slog.Warn("after-delete hook failed", "slug", slug, "error", err)
	}

	revalidated := s.maybeRevalidate(latest.EverPublished(), slug, latest.UpdatedBy)
	return &DeleteResult{Slug: slug, DeletedVersionCount: count, Revalidated: revalidated}, nil
}

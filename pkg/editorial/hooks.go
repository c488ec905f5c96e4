package editorial

import (
	"context"
	"log/slog"
)

// Hook system allows extending the content lifecycle without modifying
// core code. Hooks are called at specific points in each transition.

// Hooks defines all available lifecycle hooks
type Hooks struct {
	BeforeContentCreate []BeforeContentCreateHook
	AfterContentCreate  []AfterContentCreateHook
	BeforeContentUpdate []BeforeContentUpdateHook
	AfterContentUpdate  []AfterContentUpdateHook
	BeforeContentDelete []BeforeContentDeleteHook
	AfterContentDelete  []AfterContentDeleteHook

	// Status change hooks
	OnStatusChange []StatusChangeHook

	// Error hooks
	OnError []ErrorHook
}

// HookContext carries information through the hook chain
type HookContext struct {
	Context   context.Context
	Metadata  map[string]interface{} // Custom metadata passed between hooks
	StopChain bool                   // Set to true to stop processing remaining hooks
}

// NewHookContext creates a new hook context
func NewHookContext(ctx context.Context) *HookContext {
	return &HookContext{
		Context:  ctx,
		Metadata: make(map[string]interface{}),
	}
}

// BeforeContentCreateHook is called before a lineage is created
type BeforeContentCreateHook func(hctx *HookContext, req *CreateContentRequest) error

// AfterContentCreateHook is called after a lineage is created
type AfterContentCreateHook func(hctx *HookContext, entity *ContentEntity) error

// BeforeContentUpdateHook is called before an update transition runs,
// with the latest stored row and the incoming intent
type BeforeContentUpdateHook func(hctx *HookContext, latest *ContentEntity, req *UpdateContentRequest) error

// AfterContentUpdateHook is called after an update transition committed
type AfterContentUpdateHook func(hctx *HookContext, entity *ContentEntity) error

// BeforeContentDeleteHook is called before a lineage is deleted
type BeforeContentDeleteHook func(hctx *HookContext, slug string) error

// AfterContentDeleteHook is called after a lineage is deleted
type AfterContentDeleteHook func(hctx *HookContext, slug string) error

// StatusChangeHook is called when a transition changes the latest row's status
type StatusChangeHook func(hctx *HookContext, slug string, oldStatus, newStatus ContentStatus) error

// ErrorHook is called when a transition fails
type ErrorHook func(hctx *HookContext, operation string, err error)

// Hook execution helpers

func (h *Hooks) executeBeforeContentCreate(ctx context.Context, req *CreateContentRequest) error {
	if len(h.BeforeContentCreate) == 0 {
		return nil
	}

	hctx := NewHookContext(ctx)
	for _, hook := range h.BeforeContentCreate {
		if err := hook(hctx, req); err != nil {
			return err
		}
		if hctx.StopChain {
			break
		}
	}
	return nil
}

func (h *Hooks) executeAfterContentCreate(ctx context.Context, entity *ContentEntity) error {
	if len(h.AfterContentCreate) == 0 {
		return nil
	}

	hctx := NewHookContext(ctx)
	for _, hook := range h.AfterContentCreate {
		if err := hook(hctx, entity); err != nil {
			return err
		}
		if hctx.StopChain {
			break
		}
	}
	return nil
}

func (h *Hooks) executeBeforeContentUpdate(ctx context.Context, latest *ContentEntity, req *UpdateContentRequest) error {
	if len(h.BeforeContentUpdate) == 0 {
		return nil
	}

	hctx := NewHookContext(ctx)
	for _, hook := range h.BeforeContentUpdate {
		if err := hook(hctx, latest, req); err != nil {
			return err
		}
		if hctx.StopChain {
			break
		}
	}
	return nil
}

func (h *Hooks) executeAfterContentUpdate(ctx context.Context, entity *ContentEntity) error {
	if len(h.AfterContentUpdate) == 0 {
		return nil
	}

	hctx := NewHookContext(ctx)
	for _, hook := range h.AfterContentUpdate {
		if err := hook(hctx, entity); err != nil {
			return err
		}
		if hctx.StopChain {
			break
		}
	}
	return nil
}

func (h *Hooks) executeBeforeContentDelete(ctx context.Context, slug string) error {
	if len(h.BeforeContentDelete) == 0 {
		return nil
	}

	hctx := NewHookContext(ctx)
	for _, hook := range h.BeforeContentDelete {
		if err := hook(hctx, slug); err != nil {
			return err
		}
		if hctx.StopChain {
			break
		}
	}
	return nil
}

func (h *Hooks) executeAfterContentDelete(ctx context.Context, slug string) error {
	if len(h.AfterContentDelete) == 0 {
		return nil
	}

	hctx := NewHookContext(ctx)
	for _, hook := range h.AfterContentDelete {
		if err := hook(hctx, slug); err != nil {
			return err
		}
		if hctx.StopChain {
			break
		}
	}
	return nil
}

func (h *Hooks) executeOnStatusChange(ctx context.Context, slug string, oldStatus, newStatus ContentStatus) error {
	if len(h.OnStatusChange) == 0 {
		return nil
	}

	hctx := NewHookContext(ctx)
	for _, hook := range h.OnStatusChange {
		if err := hook(hctx, slug, oldStatus, newStatus); err != nil {
			return err
		}
		if hctx.StopChain {
			break
		}
	}
	return nil
}

func (h *Hooks) executeOnError(ctx context.Context, operation string, err error) {
	if len(h.OnError) == 0 {
		return
	}

	hctx := NewHookContext(ctx)
	for _, hook := range h.OnError {
		hook(hctx, operation, err)
		if hctx.StopChain {
			break
		}
	}
}

// LoggingHooks logs every lifecycle event through the given logger.
func LoggingHooks(logger *slog.Logger) *Hooks {
	return &Hooks{
		AfterContentCreate: []AfterContentCreateHook{
			func(hctx *HookContext, entity *ContentEntity) error {
				logger.Info("content created", "slug", entity.Slug, "type", entity.Type, "created_by", entity.CreatedBy)
				return nil
			},
		},
		AfterContentUpdate: []AfterContentUpdateHook{
			func(hctx *HookContext, entity *ContentEntity) error {
				logger.Info("content updated", "slug", entity.Slug, "version", entity.Version, "status", entity.Status)
				return nil
			},
		},
		AfterContentDelete: []AfterContentDeleteHook{
			func(hctx *HookContext, slug string) error {
				logger.Info("content deleted", "slug", slug)
				return nil
			},
		},
		OnStatusChange: []StatusChangeHook{
			func(hctx *HookContext, slug string, oldStatus, newStatus ContentStatus) error {
				logger.Info("content status changed", "slug", slug, "from", oldStatus, "to", newStatus)
				return nil
			},
		},
		OnError: []ErrorHook{
			func(hctx *HookContext, operation string, err error) {
				logger.Error("content operation failed", "operation", operation, "error", err)
			},
		},
	}
}

package editorial

import (
	"context"
	"log/slog"
)

// NoopNotifier is a no-operation implementation of RevalidationNotifier.
// Useful when no downstream cache or renderer needs invalidation.
type NoopNotifier struct{}

// NewNoopNotifier creates a new no-operation notifier
func NewNoopNotifier() RevalidationNotifier {
	return &NoopNotifier{}
}

// Notify does nothing and returns nil
func (n *NoopNotifier) Notify(ctx context.Context, slug string, authorID string) error {
	return nil
}

// LoggingNotifier logs revalidation requests but takes no other action.
// Useful for development and debugging.
type LoggingNotifier struct {
	logger *slog.Logger
}

// NewLoggingNotifier creates a notifier that logs through the given logger.
func NewLoggingNotifier(logger *slog.Logger) RevalidationNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingNotifier{logger: logger}
}

// Notify logs the revalidation request
func (n *LoggingNotifier) Notify(ctx context.Context, slug string, authorID string) error {
	n.logger.Info("revalidation requested", "slug", slug, "author", authorID)
	return nil
}

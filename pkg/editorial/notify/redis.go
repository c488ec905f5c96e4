// Package notify provides RevalidationNotifier implementations that push
// cache-invalidation signals to downstream rendering layers after content
// becomes, or stops being, publicly visible.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// pageKeyPrefix matches the key scheme the rendering layer uses for
// cached pages.
const pageKeyPrefix = "page:"

// Connect creates a Redis client and verifies the connection with a ping.
func Connect(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// CacheNotifier invalidates cached pages in Redis when content visibility
// changes. Deleting a missing key is not an error, so notifications are
// naturally idempotent.
type CacheNotifier struct {
	client *redis.Client
}

// NewCacheNotifier creates a notifier backed by the given Redis client.
func NewCacheNotifier(client *redis.Client) *CacheNotifier {
	return &CacheNotifier{client: client}
}

func (n *CacheNotifier) Notify(ctx context.Context, slug string, authorID string) error {
	if err := n.client.Del(ctx, pageKeyPrefix+slug).Err(); err != nil {
		return fmt.Errorf("cache invalidate %s: %w", slug, err)
	}
	return nil
}

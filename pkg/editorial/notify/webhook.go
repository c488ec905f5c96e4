package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WebhookNotifier POSTs a revalidation request to an external endpoint,
// typically a frontend's on-demand revalidation route.
type WebhookNotifier struct {
	url    string
	secret string
	client *http.Client
}

// WebhookOption configures a WebhookNotifier.
type WebhookOption func(*WebhookNotifier)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) WebhookOption {
	return func(n *WebhookNotifier) {
		n.client = client
	}
}

// NewWebhookNotifier creates a notifier that POSTs to the given URL.
// The secret, when non-empty, is sent in the X-Revalidate-Secret header.
func NewWebhookNotifier(url, secret string, opts ...WebhookOption) *WebhookNotifier {
	n := &WebhookNotifier{
		url:    url,
		secret: secret,
		client: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

type revalidatePayload struct {
	Slug   string `json:"slug"`
	Author string `json:"author,omitempty"`
}

func (n *WebhookNotifier) Notify(ctx context.Context, slug string, authorID string) error {
	body, err := json.Marshal(revalidatePayload{Slug: slug, Author: authorID})
	if err != nil {
		return fmt.Errorf("marshal revalidation payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build revalidation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.secret != "" {
		req.Header.Set("X-Revalidate-Secret", n.secret)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("revalidation request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("revalidation endpoint returned %d for %s", resp.StatusCode, slug)
	}
	return nil
}

package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookNotifier(t *testing.T) {
	t.Run("posts slug and secret header", func(t *testing.T) {
		var gotPayload revalidatePayload
		var gotSecret string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotSecret = r.Header.Get("X-Revalidate-Secret")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		n := NewWebhookNotifier(srv.URL, "s3cret")
		err := n.Notify(context.Background(), "getting-started", "author-1")
		require.NoError(t, err)

		assert.Equal(t, "getting-started", gotPayload.Slug)
		assert.Equal(t, "author-1", gotPayload.Author)
		assert.Equal(t, "s3cret", gotSecret)
	})

	t.Run("non-2xx response is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		n := NewWebhookNotifier(srv.URL, "")
		err := n.Notify(context.Background(), "getting-started", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("unreachable endpoint is an error", func(t *testing.T) {
		n := NewWebhookNotifier("http://127.0.0.1:1/revalidate", "")
		err := n.Notify(context.Background(), "getting-started", "")
		require.Error(t, err)
	})
}

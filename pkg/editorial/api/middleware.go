package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Context keys for middleware
type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	AuthorIDKey  contextKey = "author_id"
)

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityMiddleware reads the author identity from the X-Author-Id header
// and stores it on the request context. Identity verification is expected
// to happen upstream; this service only attributes changes.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		author := r.Header.Get("X-Author-Id")
		if author != "" {
			r = r.WithContext(context.WithValue(r.Context(), AuthorIDKey, author))
		}
		next.ServeHTTP(w, r)
	})
}

// AuthorID extracts the author identity from the context, if present.
func AuthorID(ctx context.Context) string {
	if v, ok := ctx.Value(AuthorIDKey).(string); ok {
		return v
	}
	return ""
}

// RequestID extracts the request ID from the context, if present.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(RequestIDKey).(string); ok {
		return v
	}
	return ""
}

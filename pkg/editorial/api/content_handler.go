package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/draftpress/editorial/pkg/editorial"
)

// ContentHandler handles HTTP requests for content using pkg/editorial
type ContentHandler struct {
	service editorial.Service
}

// NewContentHandler creates a new content handler
func NewContentHandler(service editorial.Service) *ContentHandler {
	return &ContentHandler{service: service}
}

// Routes returns the routes for content
func (h *ContentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.CreateContent)
	r.Get("/", h.ListContent)
	r.Get("/{slug}", h.GetContent)
	r.Patch("/{slug}", h.UpdateContent)
	r.Delete("/{slug}", h.DeleteContent)

	// Routes for version history
	r.Get("/{slug}/versions", h.ListVersions)
	r.Get("/{slug}/versions/{version}", h.GetContentVersion)

	// Routes for status transitions
	r.Post("/{slug}/publish", h.PublishContent)
	r.Post("/{slug}/unpublish", h.UnpublishContent)
	r.Post("/{slug}/archive", h.ArchiveContent)

	return r
}

// CreateContentBody is the request body for creating content
type CreateContentBody struct {
	Type     string                `json:"type"`
	Slug     string                `json:"slug,omitempty"`
	Title    string                `json:"title"`
	Blocks   []editorial.Block     `json:"blocks,omitempty"`
	SEO      editorial.SEOMetadata `json:"seo,omitempty"`
	Category string                `json:"category,omitempty"`
	Tags     []string              `json:"tags,omitempty"`
	Excerpt  string                `json:"excerpt,omitempty"`
	SKU      string                `json:"sku,omitempty"`
}

// UpdateContentBody is the request body for a partial update. Fields
// absent from the payload keep their stored values; fields present with
// an explicit null are cleared. Status, when present, is the transition
// target.
type UpdateContentBody struct {
	editorial.Patch
	Status editorial.Field[editorial.ContentStatus] `json:"status"`
}

// errorResponse is the JSON body for all error replies
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeError maps domain errors onto HTTP status codes
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *editorial.ValidationError
	if errors.As(err, &verr) {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: verr.Reason, Field: verr.Field})
		return
	}

	switch {
	case errors.Is(err, editorial.ErrInvalidContentType),
		errors.Is(err, editorial.ErrInvalidContentStatus),
		errors.Is(err, editorial.ErrInvalidSlug):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: err.Error()})
	case errors.Is(err, editorial.ErrNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, errorResponse{Error: "content not found"})
	case errors.Is(err, editorial.ErrConflict):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, errorResponse{Error: err.Error()})
	default:
		slog.Error("Request failed", "path", r.URL.Path, "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{Error: "internal error"})
	}
}

// CreateContent creates a new content lineage at version 1
func (h *ContentHandler) CreateContent(w http.ResponseWriter, r *http.Request) {
	var body CreateContentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	content, err := h.service.CreateContent(r.Context(), editorial.CreateContentRequest{
		Type:      editorial.ContentType(body.Type),
		Slug:      body.Slug,
		Title:     body.Title,
		Blocks:    body.Blocks,
		SEO:       body.SEO,
		Category:  body.Category,
		Tags:      body.Tags,
		Excerpt:   body.Excerpt,
		SKU:       body.SKU,
		CreatedBy: AuthorID(r.Context()),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("Content created", "slug", content.Slug, "type", content.Type)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, content)
}

// GetContent retrieves the latest version for a slug
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	content, err := h.service.GetContent(r.Context(), slug)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, content)
}

// ListContent lists the latest version of each lineage, with optional
// type/status filters and limit/offset pagination
func (h *ContentHandler) ListContent(w http.ResponseWriter, r *http.Request) {
	req := editorial.ListContentRequest{}

	if v := r.URL.Query().Get("type"); v != "" {
		t := editorial.ContentType(v)
		if !t.IsValid() {
			writeError(w, r, editorial.ErrInvalidContentType)
			return
		}
		req.Type = &t
	}
	if v := r.URL.Query().Get("status"); v != "" {
		s := editorial.ContentStatus(v)
		if !s.IsValid() {
			writeError(w, r, editorial.ErrInvalidContentStatus)
			return
		}
		req.Status = &s
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		req.Limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "Invalid offset", http.StatusBadRequest)
			return
		}
		req.Offset = n
	}

	contents, err := h.service.ListContent(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"contents": contents})
}

// UpdateContent applies a partial update, branching a new version when
// the latest row is published
func (h *ContentHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var body UpdateContentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req := editorial.UpdateContentRequest{
		Slug:      slug,
		Patch:     body.Patch,
		UpdatedBy: AuthorID(r.Context()),
	}
	if body.Status.Set {
		if !body.Status.Valid {
			writeError(w, r, &editorial.ValidationError{Field: "status", Reason: "status cannot be null"})
			return
		}
		status := body.Status.Value
		req.TargetStatus = &status
	}

	result, err := h.service.UpdateContent(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("Content updated", "slug", slug, "version", result.Content.Version, "status", result.Content.Status)
	render.JSON(w, r, result)
}

// ListVersions returns the full lineage for a slug, version ascending
func (h *ContentHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	versions, err := h.service.ListVersions(r.Context(), slug)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"versions": versions})
}

// GetContentVersion retrieves one specific version of a lineage
func (h *ContentHandler) GetContentVersion(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	version, err := strconv.Atoi(chi.URLParam(r, "version"))
	if err != nil || version < 1 {
		http.Error(w, "Invalid version", http.StatusBadRequest)
		return
	}

	content, err := h.service.GetContentVersion(r.Context(), slug, version)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, content)
}

// PublishContent makes the latest version publicly visible
func (h *ContentHandler) PublishContent(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	result, err := h.service.PublishContent(r.Context(), slug, AuthorID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("Content published", "slug", slug, "version", result.Content.Version)
	render.JSON(w, r, result)
}

// UnpublishContent demotes a published latest row back to draft
func (h *ContentHandler) UnpublishContent(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	result, err := h.service.UnpublishContent(r.Context(), slug, AuthorID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("Content unpublished", "slug", slug)
	render.JSON(w, r, result)
}

// ArchiveContent retires the latest row
func (h *ContentHandler) ArchiveContent(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	result, err := h.service.ArchiveContent(r.Context(), slug, AuthorID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("Content archived", "slug", slug)
	render.JSON(w, r, result)
}

// DeleteContent removes an entire lineage
func (h *ContentHandler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	result, err := h.service.DeleteContent(r.Context(), slug)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("Content deleted", "slug", slug, "versions", result.DeletedVersionCount)
	render.JSON(w, r, result)
}

package editorial

import (
	"time"

	"github.com/google/uuid"
)

// ContentType is the domain type of a content entity. It is fixed at
// creation and never changes for the lifetime of a lineage.
type ContentType string

// Content type constants (typed).
const (
	ContentTypePage    ContentType = "page"
	ContentTypeBlog    ContentType = "blog"
	ContentTypeProduct ContentType = "product"
)

// IsValid reports whether t is a supported content type.
func (t ContentType) IsValid() bool {
	switch t {
	case ContentTypePage, ContentTypeBlog, ContentTypeProduct:
		return true
	}
	return false
}

// ContentStatus is the domain type for content lifecycle states.
type ContentStatus string

// Content status constants (typed).
const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
	ContentStatusArchived  ContentStatus = "archived"
)

// IsValid reports whether s is a known lifecycle status.
func (s ContentStatus) IsValid() bool {
	switch s {
	case ContentStatusDraft, ContentStatusPublished, ContentStatusArchived:
		return true
	}
	return false
}

// Block kind constants.
const (
	BlockKindText  = "text"
	BlockKindImage = "image"
	BlockKindEmbed = "embed"
	BlockKindCode  = "code"
)

// Block is one ordered unit of a content body. Only "text" blocks
// contribute to derived fields such as the reading-time estimate.
type Block struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
	Src  string `json:"src,omitempty"`
	Alt  string `json:"alt,omitempty"`
	Lang string `json:"lang,omitempty"`
}

// SEOMetadata is the nested metadata block attached to every entity.
// Partial updates shallow-merge it key by key instead of replacing it.
type SEOMetadata struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	OGImage     string   `json:"og_image,omitempty"`
}

// ContentEntity is one row of a lineage, keyed by (slug, version).
//
// Category, Tags and Excerpt are blog-specific; SKU is product-specific
// (Category is also valid for products). ReadTime is derived from Blocks
// and never independently writable. CreatedBy/UpdatedBy hold the opaque
// caller identifier supplied by the upstream authentication layer.
type ContentEntity struct {
	ID          uuid.UUID     `json:"id"`
	Slug        string        `json:"slug"`
	Type        ContentType   `json:"type"`
	Version     int           `json:"version"`
	Status      ContentStatus `json:"status"`
	Title       string        `json:"title"`
	Blocks      []Block       `json:"blocks,omitempty"`
	SEO         SEOMetadata   `json:"seo"`
	Category    string        `json:"category,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	Excerpt     string        `json:"excerpt,omitempty"`
	SKU         string        `json:"sku,omitempty"`
	ReadTime    int           `json:"read_time"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	PublishedAt *time.Time    `json:"published_at,omitempty"`
	CreatedBy   string        `json:"created_by,omitempty"`
	UpdatedBy   string        `json:"updated_by,omitempty"`
}

// Clone returns a deep copy of the entity. Branch-on-edit seeds new
// versions from clones so that published rows are never aliased.
func (e *ContentEntity) Clone() *ContentEntity {
	c := *e
	if e.Blocks != nil {
		c.Blocks = make([]Block, len(e.Blocks))
		copy(c.Blocks, e.Blocks)
	}
	if e.Tags != nil {
		c.Tags = append([]string(nil), e.Tags...)
	}
	if e.SEO.Keywords != nil {
		c.SEO.Keywords = append([]string(nil), e.SEO.Keywords...)
	}
	if e.PublishedAt != nil {
		t := *e.PublishedAt
		c.PublishedAt = &t
	}
	return &c
}

// IsPublished reports whether this row is in published status.
func (e *ContentEntity) IsPublished() bool {
	return e.Status == ContentStatusPublished
}

// EverPublished reports whether any version of the lineage has been
// published. PublishedAt is set on first publish and carried forward to
// later draft branches, so on the latest row it acts as a latch.
func (e *ContentEntity) EverPublished() bool {
	return e.Status == ContentStatusPublished || e.PublishedAt != nil
}

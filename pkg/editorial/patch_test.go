package editorial

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldUnmarshalJSON(t *testing.T) {
	type payload struct {
		Title   Field[string]   `json:"title"`
		Excerpt Field[string]   `json:"excerpt"`
		Tags    Field[[]string] `json:"tags"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"title":"New","excerpt":null}`), &p))

	assert.True(t, p.Title.Set)
	assert.True(t, p.Title.Valid)
	assert.Equal(t, "New", p.Title.Value)

	// Present with explicit null: set but not valid.
	assert.True(t, p.Excerpt.Set)
	assert.False(t, p.Excerpt.Valid)

	// Omitted entirely: untouched.
	assert.False(t, p.Tags.Set)
}

func blogEntity() *ContentEntity {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &ContentEntity{
		ID:      uuid.New(),
		Slug:    "first-post",
		Type:    ContentTypeBlog,
		Version: 1,
		Status:  ContentStatusDraft,
		Title:   "First Post",
		Blocks:  []Block{{Kind: BlockKindText, Text: "body"}},
		SEO: SEOMetadata{
			Title:       "First Post",
			Description: "the original description",
			Keywords:    []string{"first"},
		},
		Category:  "news",
		Tags:      []string{"a", "b"},
		Excerpt:   "short",
		ReadTime:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestApplyPatch(t *testing.T) {
	t.Run("omitted fields keep stored values", func(t *testing.T) {
		existing := blogEntity()
		next := ApplyPatch(existing, Patch{Title: NewField("Renamed")})

		assert.Equal(t, "Renamed", next.Title)
		assert.Equal(t, existing.Excerpt, next.Excerpt)
		assert.Equal(t, existing.Tags, next.Tags)
		assert.Equal(t, existing.SEO, next.SEO)
	})

	t.Run("explicit null clears", func(t *testing.T) {
		next := ApplyPatch(blogEntity(), Patch{
			Excerpt: NullField[string](),
			Tags:    NullField[[]string](),
		})
		assert.Empty(t, next.Excerpt)
		assert.Nil(t, next.Tags)
	})

	t.Run("seo shallow merge touches only present keys", func(t *testing.T) {
		next := ApplyPatch(blogEntity(), Patch{
			SEO: NewField(SEOPatch{Description: NewField("rewritten")}),
		})
		assert.Equal(t, "rewritten", next.SEO.Description)
		assert.Equal(t, "First Post", next.SEO.Title)
		assert.Equal(t, []string{"first"}, next.SEO.Keywords)
	})

	t.Run("seo null clears the whole block", func(t *testing.T) {
		next := ApplyPatch(blogEntity(), Patch{SEO: NullField[SEOPatch]()})
		assert.Equal(t, SEOMetadata{}, next.SEO)
	})

	t.Run("type-mismatched fields are ignored", func(t *testing.T) {
		page := blogEntity()
		page.Type = ContentTypePage
		next := ApplyPatch(page, Patch{
			Category: NewField("tools"),
			SKU:      NewField("SKU-1"),
			Excerpt:  NewField("nope"),
		})
		assert.Equal(t, page.Category, next.Category)
		assert.Empty(t, next.SKU)
		assert.Equal(t, page.Excerpt, next.Excerpt)

		product := blogEntity()
		product.Type = ContentTypeProduct
		next = ApplyPatch(product, Patch{
			SKU:     NewField("SKU-1"),
			Excerpt: NewField("nope"),
			Tags:    NewField([]string{"x"}),
		})
		assert.Equal(t, "SKU-1", next.SKU)
		assert.Equal(t, product.Excerpt, next.Excerpt)
		assert.Equal(t, product.Tags, next.Tags)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		existing := blogEntity()
		_ = ApplyPatch(existing, Patch{
			Title:  NewField("Changed"),
			Blocks: NewField([]Block{{Kind: BlockKindText, Text: "replaced"}}),
		})
		assert.Equal(t, "First Post", existing.Title)
		assert.Equal(t, "body", existing.Blocks[0].Text)
	})

	t.Run("slug is never applied here", func(t *testing.T) {
		next := ApplyPatch(blogEntity(), Patch{Slug: NewField("other-slug")})
		assert.Equal(t, "first-post", next.Slug)
	})
}

func TestPatchIsZero(t *testing.T) {
	assert.True(t, Patch{}.IsZero())
	assert.False(t, Patch{Title: NewField("x")}.IsZero())
	assert.False(t, Patch{Excerpt: NullField[string]()}.IsZero())
}

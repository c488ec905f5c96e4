package editorial

// SEOPatch carries presence-aware updates for the nested SEO block.
// The block is shallow-merged: only keys present in the payload change,
// the rest of the block keeps its stored values.
type SEOPatch struct {
	Title       Field[string]   `json:"title"`
	Description Field[string]   `json:"description"`
	Keywords    Field[[]string] `json:"keywords"`
	OGImage     Field[string]   `json:"og_image"`
}

// Patch is a presence-aware partial update of a content entity. A field
// omitted from the payload keeps its stored value; a field present with
// an explicit null is cleared.
//
// Slug is not applied by ApplyPatch: slug changes are a state-machine
// concern (they are only legal while a lineage has never published) and
// are handled by the transition planner.
type Patch struct {
	Slug     Field[string]   `json:"slug"`
	Title    Field[string]   `json:"title"`
	Blocks   Field[[]Block]  `json:"blocks"`
	SEO      Field[SEOPatch] `json:"seo"`
	Category Field[string]   `json:"category"`
	Tags     Field[[]string] `json:"tags"`
	Excerpt  Field[string]   `json:"excerpt"`
	SKU      Field[string]   `json:"sku"`
}

// IsZero reports whether the patch carries no keys at all.
func (p Patch) IsZero() bool {
	return !p.Slug.Set && !p.Title.Set && !p.Blocks.Set && !p.SEO.Set &&
		!p.Category.Set && !p.Tags.Set && !p.Excerpt.Set && !p.SKU.Set
}

// HasBody reports whether the patch replaces the body. Derived fields
// are recomputed exactly when this is true.
func (p Patch) HasBody() bool {
	return p.Blocks.Set
}

// ApplyPatch merges a partial update onto a copy of existing and returns
// the candidate snapshot without persisting it. Type-specific fields
// that do not belong to the entity's type are silently ignored, the
// same policy as slug changes on published lineages.
func ApplyPatch(existing *ContentEntity, p Patch) *ContentEntity {
	next := existing.Clone()

	if p.Title.Set {
		next.Title = p.Title.Value
	}
	if p.Blocks.Set {
		if p.Blocks.Valid {
			next.Blocks = make([]Block, len(p.Blocks.Value))
			copy(next.Blocks, p.Blocks.Value)
		} else {
			next.Blocks = nil
		}
	}
	if p.SEO.Set {
		if p.SEO.Valid {
			mergeSEO(&next.SEO, p.SEO.Value)
		} else {
			next.SEO = SEOMetadata{}
		}
	}

	switch existing.Type {
	case ContentTypeBlog:
		if p.Category.Set {
			next.Category = p.Category.Value
		}
		if p.Tags.Set {
			if p.Tags.Valid {
				next.Tags = append([]string(nil), p.Tags.Value...)
			} else {
				next.Tags = nil
			}
		}
		if p.Excerpt.Set {
			next.Excerpt = p.Excerpt.Value
		}
	case ContentTypeProduct:
		if p.Category.Set {
			next.Category = p.Category.Value
		}
		if p.SKU.Set {
			next.SKU = p.SKU.Value
		}
	}

	return next
}

func mergeSEO(dst *SEOMetadata, p SEOPatch) {
	if p.Title.Set {
		dst.Title = p.Title.Value
	}
	if p.Description.Set {
		dst.Description = p.Description.Value
	}
	if p.Keywords.Set {
		if p.Keywords.Valid {
			dst.Keywords = append([]string(nil), p.Keywords.Value...)
		} else {
			dst.Keywords = nil
		}
	}
	if p.OGImage.Set {
		dst.OGImage = p.OGImage.Value
	}
}

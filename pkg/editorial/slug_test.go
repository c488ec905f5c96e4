package editorial

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Hello World", "hello-world"},
		{"punctuation stripped", "Hello, World! 2026", "hello-world-2026"},
		{"extra whitespace", "  Spaced   Out  ", "spaced-out"},
		{"already a slug", "already-a-slug", "already-a-slug"},
		{"diacritics transliterated", "Café au lait", "cafe-au-lait"},
		{"other unicode dropped", "Tokyo 東京 Guide", "tokyo-guide"},
		{"only punctuation", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.input))
		})
	}

	t.Run("truncates long input", func(t *testing.T) {
		got := GenerateSlug(strings.Repeat("word ", 100))
		assert.LessOrEqual(t, len(got), 200)
		assert.NoError(t, ValidateSlug(got))
	})
}

func TestValidateSlug(t *testing.T) {
	assert.NoError(t, ValidateSlug("hello-world-2026"))
	assert.NoError(t, ValidateSlug("a"))

	for _, bad := range []string{"", "-leading", "trailing-", "double--hyphen", "Upper", "with space", "café"} {
		assert.ErrorIs(t, ValidateSlug(bad), ErrInvalidSlug, "slug %q", bad)
	}

	assert.ErrorIs(t, ValidateSlug(strings.Repeat("a", 201)), ErrInvalidSlug)
}

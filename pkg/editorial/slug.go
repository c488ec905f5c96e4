package editorial

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	slugPattern     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

const maxSlugLength = 200

// GenerateSlug derives a URL-safe slug from an arbitrary string.
// Example: "Hello, World! 2026" -> "hello-world-2026"
func GenerateSlug(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = stripDiacritics(result)
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if len(result) > maxSlugLength {
		result = strings.Trim(result[:maxSlugLength], "-")
	}
	return result
}

// stripDiacritics maps accented Latin lowercase letters onto their bare
// ASCII equivalents so titles like "Café" slug to "cafe" instead of
// dropping the letter. Characters outside Latin-1 are left for the
// alphanumeric filter to remove.
func stripDiacritics(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	for _, r := range s {
		switch {
		case r < 128:
			result.WriteRune(r)
		case r >= 'à' && r <= 'å':
			result.WriteRune('a')
		case r >= 'è' && r <= 'ë':
			result.WriteRune('e')
		case r >= 'ì' && r <= 'ï':
			result.WriteRune('i')
		case r >= 'ò' && r <= 'ö':
			result.WriteRune('o')
		case r >= 'ù' && r <= 'ü':
			result.WriteRune('u')
		case r == 'ç':
			result.WriteRune('c')
		case r == 'ñ':
			result.WriteRune('n')
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}

// ValidateSlug checks the slug format: lowercase alphanumerics separated
// by single hyphens, at most 200 characters.
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("%w: empty", ErrInvalidSlug)
	}
	if len(slug) > maxSlugLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidSlug, maxSlugLength)
	}
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("%w: %q", ErrInvalidSlug, slug)
	}
	return nil
}

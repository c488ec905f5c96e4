package editorial

import (
	"regexp"
	"strings"
)

// DefaultWordsPerMinute is the reading speed used for read-time
// estimates when the caller does not supply one.
const DefaultWordsPerMinute = 200

// markupTags matches HTML/markup tags so they never count as words.
var markupTags = regexp.MustCompile(`<[^>]*>`)

// ComputeReadTime estimates reading time in whole minutes for a body.
// Only "text" blocks contribute; markup is stripped before counting
// whitespace-delimited words. The result is ceil(words/wpm) clamped to
// a minimum of 1, so an empty or near-empty body still reports 1.
func ComputeReadTime(blocks []Block, wordsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}

	words := 0
	for _, b := range blocks {
		if b.Kind != BlockKindText {
			continue
		}
		plain := markupTags.ReplaceAllString(b.Text, " ")
		words += len(strings.Fields(plain))
	}

	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

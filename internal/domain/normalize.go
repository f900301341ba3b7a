package domain

import (
	"strings"
)

// NormalizeText builds the case-insensitive comparison key used for
// destination names:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses runs of spaces into one
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SameDestination reports whether two destination names refer to the same
// trip under case-insensitive matching.
func SameDestination(a, b string) bool {
	return NormalizeText(a) == NormalizeText(b)
}

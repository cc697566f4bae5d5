package utils

import (
	"strings"
	"unicode"
)

// Slugify derives a URL-safe slug from a title: lower-case, punctuation
// stripped, whitespace runs collapsed into single dashes.
func Slugify(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	b.Grow(len(title))
	lastDash := true // suppress a leading dash
	for _, r := range title {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
		// everything else (punctuation, symbols) is dropped
	}
	return strings.TrimRight(b.String(), "-")
}

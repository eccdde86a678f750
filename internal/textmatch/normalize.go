// Package textmatch locates a free-text quote inside a page's OCR text
// regions. Matching runs on canonicalized text: exact containment covers
// clean OCR and embedded text layers, a longest-common-substring fallback
// absorbs OCR noise and line-wrap artifacts.
package textmatch

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes text for comparison: lower-case, drop every
// character outside [a-z0-9] and whitespace, collapse whitespace runs to a
// single space, trim the ends. Idempotent; empty input yields empty output.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pendingSpace := false
	for _, r := range strings.ToLower(text) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			pendingSpace = true
		}
		// Everything else is stripped without breaking the current word.
	}

	return b.String()
}

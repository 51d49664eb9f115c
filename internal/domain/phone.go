package domain

import (
	"strings"
	"unicode"
)

// NormalizePhone strips whitespace, hyphens and a leading "+".
// The result is a comparison key only, never shown to users.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if unicode.IsSpace(r) || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimPrefix(b.String(), "+")
}

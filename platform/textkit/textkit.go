// Package textkit provides text canonicalization utilities.
// This is part of the platform layer and contains no business logic.
package textkit

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining diacritical marks after NFD decomposition,
// so "Cédric" and "Cedric" canonicalize to the same form.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripDiacritics returns s with all combining diacritical marks removed.
// On transform failure the input is returned unchanged.
func StripDiacritics(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeKey canonicalizes a free-text name into a lookup key:
// trim, lower-case, strip diacritics, collapse every run of characters
// outside [a-z0-9] to a single space, trim again.
// Total and idempotent; empty input yields empty output.
func NormalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = StripDiacritics(s)

	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		} else {
			pendingSpace = true
		}
	}
	return b.String()
}

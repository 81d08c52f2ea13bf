// Package stringutil provides common string manipulation utilities for
// normalizing informal Portuguese input.
package stringutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticStripper decomposes characters and drops the combining marks,
// so "amanhã" folds to "amanha". Built once; transform.Transformer values
// are not safe for concurrent use, so Remove is called per invocation.
var diacriticSet = runes.In(unicode.Mn)

// Fold lower-cases s and strips its diacritics, the normal form used
// for all lexicon lookups ("Sábado" -> "sabado").
func Fold(s string) string {
	return RemoveDiacritics(strings.ToLower(s))
}

// RemoveDiacritics strips combining marks from s ("sábado" -> "sabado").
// Returns s unchanged if the transformation fails.
func RemoveDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(diacriticSet), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeWhitespace collapses runs of whitespace into single spaces and
// trims the result.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripPunctuation removes punctuation runes, keeping characters that carry
// meaning for temporal expressions (':', '/', '-' survive so "2:00" and
// "25/12" stay intact).
func StripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ':', '/', '-':
			return r
		}
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, s)
}

// IsNumeric checks if a string contains only digits.
// Returns false for empty strings.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

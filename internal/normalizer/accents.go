package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripDiacritics decomposes s and drops every combining mark, so "ã" becomes "a".
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		// transform only fails on invalid state; keep the input comparable anyway
		return s
	}
	return out
}

// Normalize folds case and accents and trims surrounding whitespace.
// It is the only text comparison primitive used by the catalog:
//
//	Normalize("  São Paulo ") == "sao paulo"
//
// Normalize is total and idempotent.
func Normalize(text string) string {
	return strings.TrimSpace(StripDiacritics(strings.ToLower(text)))
}

// Terms normalizes a free-text query and splits it on runs of whitespace.
// A blank query yields no terms.
func Terms(query string) []string {
	return strings.Fields(Normalize(query))
}

// ContainsAll reports whether every term is a substring of haystack.
// An empty term list matches everything.
func ContainsAll(haystack string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

// IsDigits reports whether s is a non-empty run of ASCII decimal digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

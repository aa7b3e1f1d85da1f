package geo

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes a region or locality name for comparison:
// lower-case, diacritics stripped, surrounding whitespace trimmed.
// It never fails; unfoldable input falls back to plain lower-casing.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		return s
	}
	return folded
}

// NormalizeSet normalizes every element of a set of region names.
func NormalizeSet(names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		k := Normalize(n)
		if k == "" {
			continue
		}
		out[k] = true
	}
	return out
}

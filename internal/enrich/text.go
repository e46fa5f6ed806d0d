// Package enrich holds the deterministic rules that derive sales
// attributes from a hotel registry row, and the pipeline applying them.
// Nothing here logs or touches global state; callers pass rules and
// lookups in and get values and counters back.
package enrich

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// Normalize folds text for comparisons: transliterated to ASCII, lower-cased.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return strings.ToLower(unidecode.Unidecode(text))
}

// ContainsAny reports whether any keyword occurs in text once both are normalized.
// Blank keywords never match.
func ContainsAny(text string, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}
	n := Normalize(text)
	if n == "" {
		return false
	}
	for _, kw := range keywords {
		k := Normalize(kw)
		if k == "" {
			continue
		}
		if strings.Contains(n, k) {
			return true
		}
	}
	return false
}

// normalizeAll pre-folds a keyword list so hot loops skip the transliteration.
func normalizeAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if k := Normalize(kw); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// containsNormalized is ContainsAny for already-normalized inputs.
func containsNormalized(n string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(n, k) {
			return true
		}
	}
	return false
}

package enrich

import "strings"

// Context is the usage classification of a property.
type Context string

const (
	ContextUrban   Context = "urbain"
	ContextLeisure Context = "loisir"
	ContextUnknown Context = "inconnu"
)

var (
	leisureTypeKeywords = []string{"camping", "residence", "village"}
	urbanNameKeywords   = []string{"aeroport", "gare", "centre ville", "city"}
	leisureNameKeywords = []string{"plage", "mer", "montagne", "ski", "lac", "golf", "domaine", "resort"}
)

// ClassifyContext labels a property urban or leisure. Rules are tried in
// order and the first hit wins; substring matching is intentional, so
// "mer" also fires inside longer words.
func ClassifyContext(accommodationType, name, commune string, cities MajorCities) Context {
	if containsNormalized(Normalize(accommodationType), leisureTypeKeywords) {
		return ContextLeisure
	}
	n := Normalize(name)
	if containsNormalized(n, urbanNameKeywords) {
		return ContextUrban
	}
	if containsNormalized(n, leisureNameKeywords) {
		return ContextLeisure
	}
	if c := strings.TrimSpace(Normalize(commune)); c != "" && cities.Contains(c) {
		return ContextUrban
	}
	return ContextUnknown
}

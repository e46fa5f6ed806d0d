package enrich

import "strings"

// Department is one entry of the department reference table.
type Department struct {
	Region string
	Name   string
}

// GeographyLookup maps an upper-case department code ("75", "2A", "974") to its names.
type GeographyLookup map[string]Department

// GroupDomains maps a lower-case registrable domain to a hotel group name.
type GroupDomains map[string]string

// MajorCities is a set of normalized city names.
type MajorCities map[string]struct{}

// NewMajorCities normalizes names into a set; blanks are skipped.
func NewMajorCities(names ...string) MajorCities {
	set := make(MajorCities, len(names))
	for _, n := range names {
		if k := strings.TrimSpace(Normalize(n)); k != "" {
			set[k] = struct{}{}
		}
	}
	return set
}

// Contains reports membership of an already-normalized name.
func (m MajorCities) Contains(normalized string) bool {
	_, ok := m[normalized]
	return ok
}

// Lookups bundles the three reference datasets. The zero value is three
// empty lookups, which sends every row down the "unknown" branches.
type Lookups struct {
	Geography GeographyLookup
	Groups    GroupDomains
	Cities    MajorCities
}

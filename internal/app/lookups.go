package app

import (
	"github.com/rs/zerolog"

	"hotel_enrich/internal/adapters/reference"
	"hotel_enrich/internal/enrich"
)

// LookupPaths locates the three reference files.
type LookupPaths struct {
	Geography    string
	GroupDomains string
	MajorCities  string
}

// LoadLookups never fails: a lookup that cannot be loaded is logged and
// replaced by an empty one, which routes rows to the "unknown" branches.
func LoadLookups(log zerolog.Logger, p LookupPaths) enrich.Lookups {
	var l enrich.Lookups

	geo, err := reference.LoadGeography(p.Geography)
	if err != nil {
		log.Warn().Err(err).Str("path", p.Geography).Msg("geography lookup unavailable, regions left blank")
		geo = enrich.GeographyLookup{}
	} else {
		log.Info().Str("path", p.Geography).Int("entries", len(geo)).Msg("geography lookup loaded")
	}
	l.Geography = geo

	groups, err := reference.LoadGroupDomains(p.GroupDomains)
	if err != nil {
		log.Warn().Err(err).Str("path", p.GroupDomains).Msg("group domains unavailable, no hotel will be classified as group")
		groups = enrich.GroupDomains{}
	} else {
		log.Info().Str("path", p.GroupDomains).Int("entries", len(groups)).Msg("group domains loaded")
	}
	l.Groups = groups

	cities, err := reference.LoadMajorCities(p.MajorCities)
	if err != nil {
		log.Warn().Err(err).Str("path", p.MajorCities).Msg("major cities unavailable")
		cities = enrich.MajorCities{}
	} else {
		log.Info().Str("path", p.MajorCities).Int("entries", len(cities)).Msg("major cities loaded")
	}
	l.Cities = cities

	return l
}

// LoadRules returns the built-in rules when path is empty. A named file
// that cannot be read or validated is an error.
func LoadRules(log zerolog.Logger, path string) (enrich.Rules, error) {
	if path == "" {
		log.Info().Msg("no rules file, using defaults")
		return enrich.DefaultRules(), nil
	}
	r, err := enrich.LoadRules(path)
	if err != nil {
		return enrich.Rules{}, err
	}
	log.Info().Str("path", path).Str("fingerprint", r.Fingerprint()).Msg("rules loaded")
	return r, nil
}

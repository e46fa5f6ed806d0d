package app

import (
	"github.com/rs/zerolog"

	"hotel_enrich/internal/domain"
	"hotel_enrich/internal/enrich"
)

/********** core values -> API read models **********/

func toDepartmentView(postal, dept string, geo enrich.GeographyLookup) domain.DepartmentView {
	return domain.DepartmentView{
		PostalCode: postal,
		Department: dept,
		Name:       enrich.ResolveDepartmentName(dept, geo),
		Region:     enrich.ResolveRegion(dept, geo),
	}
}

func toDomainView(rawURL string, groups enrich.GroupDomains) domain.DomainView {
	d := enrich.ExtractDomain(rawURL)
	return domain.DomainView{
		URL:       rawURL,
		Domain:    d,
		Ownership: string(enrich.Classify(d, groups)),
		GroupName: enrich.ResolveGroupName(d, groups),
	}
}

/********** stats -> per-stage log lines **********/

func logStages(log zerolog.Logger, s enrich.Stats) {
	log.Info().
		Int("valid_postal_codes", s.ValidPostalCodes).
		Int("invalid_postal_codes", s.Rows-s.ValidPostalCodes).
		Msg("location columns added")
	log.Info().
		Int("small", s.Sizes[enrich.SizeSmall]).
		Int("medium", s.Sizes[enrich.SizeMedium]).
		Int("large", s.Sizes[enrich.SizeLarge]).
		Int("unknown", s.Sizes[enrich.SizeUnknown]).
		Msg("size columns added")
	log.Info().
		Int("restaurant", s.Restaurant).
		Int("spa", s.Spa).
		Msg("amenity flags added")
	log.Info().
		Int("group", s.Ownership[enrich.OwnershipGroup]).
		Int("independent", s.Ownership[enrich.OwnershipIndependent]).
		Int("unknown", s.Ownership[enrich.OwnershipUnknown]).
		Msg("ownership classified")
	log.Info().
		Int("boutique", s.Boutique).
		Int("large_property", s.LargeProperty).
		Msg("positioning flags added")
	log.Info().
		Int("urbain", s.Contexts[enrich.ContextUrban]).
		Int("loisir", s.Contexts[enrich.ContextLeisure]).
		Int("inconnu", s.Contexts[enrich.ContextUnknown]).
		Msg("context classified")
	log.Info().Int("rows", s.Rows).Msg("row count verified")
}

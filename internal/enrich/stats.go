package enrich

// Stats are the aggregate counts of one enrichment pass.
type Stats struct {
	Rows             int                 `json:"rows"`
	ValidPostalCodes int                 `json:"valid_postal_codes"`
	Restaurant       int                 `json:"restaurant"`
	Spa              int                 `json:"spa"`
	Boutique         int                 `json:"boutique"`
	LargeProperty    int                 `json:"large_property"`
	Ownership        map[Ownership]int   `json:"ownership"`
	Sizes            map[SizeSegment]int `json:"sizes"`
	Contexts         map[Context]int     `json:"contexts"`
}

func newStats() Stats {
	return Stats{
		Ownership: map[Ownership]int{},
		Sizes:     map[SizeSegment]int{},
		Contexts:  map[Context]int{},
	}
}

func (s *Stats) add(d Derived) {
	s.Rows++
	if d.Department != "" {
		s.ValidPostalCodes++
	}
	if d.Restaurant {
		s.Restaurant++
	}
	if d.Spa {
		s.Spa++
	}
	if d.Boutique {
		s.Boutique++
	}
	if d.LargeProperty {
		s.LargeProperty++
	}
	s.Ownership[d.Ownership]++
	s.Sizes[d.Size]++
	s.Contexts[d.Context]++
}

package enrich

// SizeSegment buckets a property by room count.
type SizeSegment string

const (
	SizeUnknown SizeSegment = "unknown"
	SizeSmall   SizeSegment = "small"
	SizeMedium  SizeSegment = "medium"
	SizeLarge   SizeSegment = "large"
)

// StarPolicy decides how a missing star rating affects the boutique rule.
type StarPolicy string

const (
	// MissingStarSkip ignores the star filter when the rating is unknown.
	MissingStarSkip StarPolicy = "skip"
	// MissingStarDisqualify fails the boutique rule when the rating is unknown.
	MissingStarDisqualify StarPolicy = "disqualify"
)

// Thresholds are the numeric cut-offs of the positioning rules plus the
// two policies that change how unknown numbers are read.
type Thresholds struct {
	SmallMax         int        `yaml:"small_max" json:"small_max"`
	MediumMax        int        `yaml:"medium_max" json:"medium_max"`
	BoutiqueMax      int        `yaml:"boutique_max" json:"boutique_max"`
	LargeRoomsMin    int        `yaml:"large_rooms_min" json:"large_rooms_min"`
	LargeCapacityMin int        `yaml:"large_capacity_min" json:"large_capacity_min"`
	BoutiqueMinStar  float64    `yaml:"boutique_min_star" json:"boutique_min_star"`
	ZeroRoomsUnknown bool       `yaml:"zero_rooms_unknown" json:"zero_rooms_unknown"`
	MissingStar      StarPolicy `yaml:"missing_star" json:"missing_star"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		SmallMax:         30,
		MediumMax:        80,
		BoutiqueMax:      25,
		LargeRoomsMin:    80,
		LargeCapacityMin: 160,
		BoutiqueMinStar:  3,
		ZeroRoomsUnknown: true,
		MissingStar:      MissingStarSkip,
	}
}

// KnownCount applies the zero-collapse rule: with ZeroRoomsUnknown a
// recorded 0 is indistinguishable from no data.
func (th Thresholds) KnownCount(n *int) *int {
	if n != nil && *n == 0 && th.ZeroRoomsUnknown {
		return nil
	}
	return n
}

func IsLargeProperty(rooms, capacity *int, th Thresholds) bool {
	if rooms == nil && capacity == nil {
		return false
	}
	if rooms != nil && *rooms > th.LargeRoomsMin {
		return true
	}
	return capacity != nil && *capacity > th.LargeCapacityMin
}

// IsBoutique: small, independent, and rated at least BoutiqueMinStar when rated.
func IsBoutique(ownership Ownership, rooms *int, star *float64, th Thresholds) bool {
	if ownership != OwnershipIndependent {
		return false
	}
	if rooms == nil || *rooms > th.BoutiqueMax {
		return false
	}
	if star == nil {
		return th.MissingStar != MissingStarDisqualify
	}
	return *star >= th.BoutiqueMinStar
}

func SizeLabel(rooms *int, th Thresholds) SizeSegment {
	rooms = th.KnownCount(rooms)
	switch {
	case rooms == nil:
		return SizeUnknown
	case *rooms <= th.SmallMax:
		return SizeSmall
	case *rooms <= th.MediumMax:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// CapacityRange is the French-labelled twin of the size segment.
func CapacityRange(s SizeSegment) string {
	switch s {
	case SizeSmall:
		return "petite"
	case SizeMedium:
		return "intermediaire"
	case SizeLarge:
		return "grande"
	}
	return ""
}

package enrich

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules validation errors.
var (
	ErrInvalidSmallMax      = errors.New("thresholds.small_max must be at least 1")
	ErrMediumBelowSmall     = errors.New("thresholds.medium_max cannot be below thresholds.small_max")
	ErrInvalidBoutiqueMax   = errors.New("thresholds.boutique_max must be at least 1")
	ErrInvalidLargeRooms    = errors.New("thresholds.large_rooms_min must be non-negative")
	ErrInvalidLargeCapacity = errors.New("thresholds.large_capacity_min must be non-negative")
	ErrInvalidMinStar       = errors.New("thresholds.boutique_min_star must be between 0 and 5")
	ErrInvalidStarPolicy    = errors.New("thresholds.missing_star must be one of: skip, disqualify")
	ErrInvalidNameFallback  = errors.New("name_fallback must be one of: empty, original")
)

// Rules is the per-run enrichment configuration. Never mutated once loaded.
type Rules struct {
	Thresholds         Thresholds    `yaml:"thresholds" json:"thresholds"`
	RestaurantKeywords []string      `yaml:"restaurant_keywords" json:"restaurant_keywords"`
	SpaKeywords        []string      `yaml:"spa_keywords" json:"spa_keywords"`
	NameFallback       NameFallback  `yaml:"name_fallback" json:"name_fallback"`
	Output             OutputOptions `yaml:"output" json:"output"`
}

// OutputOptions switch on the edition-specific extra columns.
type OutputOptions struct {
	DepartmentName bool `yaml:"department_name" json:"department_name"`
	CleanName      bool `yaml:"clean_name" json:"clean_name"`
}

// flatRules is the original single-level config layout
// (threshold_small_max: 30, ...). Pointers tell absent from zero.
type flatRules struct {
	SmallMax         *int `yaml:"threshold_small_max"`
	MediumMax        *int `yaml:"threshold_medium_max"`
	BoutiqueMax      *int `yaml:"threshold_boutique_max"`
	LargeRoomsMin    *int `yaml:"threshold_large_rooms_min"`
	LargeCapacityMin *int `yaml:"threshold_large_capacity_min"`
}

func DefaultRules() Rules {
	return Rules{
		Thresholds: DefaultThresholds(),
		RestaurantKeywords: []string{
			"restaurant", "brasserie", "bistrot", "bistro", "gastronomique",
			"table d'hote", "rotisserie", "grill", "pizzeria", "creperie",
		},
		SpaKeywords: []string{
			"spa", "thalasso", "wellness", "bien-etre", "bien etre",
			"hammam", "sauna", "balneo", "thermes", "thermal",
		},
		NameFallback: FallbackEmpty,
	}
}

// LoadRules reads a YAML rules file over the defaults.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to read rules file: %w", err)
	}
	return ParseRules(data)
}

// ParseRules decodes YAML over DefaultRules; keys left out keep their default.
func ParseRules(data []byte) (Rules, error) {
	r := DefaultRules()
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rules{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var flat flatRules
	if err := yaml.Unmarshal(data, &flat); err != nil {
		return Rules{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	overlay(&r.Thresholds.SmallMax, flat.SmallMax)
	overlay(&r.Thresholds.MediumMax, flat.MediumMax)
	overlay(&r.Thresholds.BoutiqueMax, flat.BoutiqueMax)
	overlay(&r.Thresholds.LargeRoomsMin, flat.LargeRoomsMin)
	overlay(&r.Thresholds.LargeCapacityMin, flat.LargeCapacityMin)

	if err := r.Validate(); err != nil {
		return Rules{}, fmt.Errorf("rules validation failed: %w", err)
	}
	return r, nil
}

func overlay(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func (r Rules) Validate() error {
	th := r.Thresholds
	if th.SmallMax < 1 {
		return ErrInvalidSmallMax
	}
	if th.MediumMax < th.SmallMax {
		return ErrMediumBelowSmall
	}
	if th.BoutiqueMax < 1 {
		return ErrInvalidBoutiqueMax
	}
	if th.LargeRoomsMin < 0 {
		return ErrInvalidLargeRooms
	}
	if th.LargeCapacityMin < 0 {
		return ErrInvalidLargeCapacity
	}
	if th.BoutiqueMinStar < 0 || th.BoutiqueMinStar > 5 {
		return ErrInvalidMinStar
	}
	switch th.MissingStar {
	case MissingStarSkip, MissingStarDisqualify:
	default:
		return ErrInvalidStarPolicy
	}
	switch r.NameFallback {
	case FallbackEmpty, FallbackOriginal:
	default:
		return ErrInvalidNameFallback
	}
	return nil
}

// Fingerprint identifies a rule set; equal rules give equal fingerprints.
func (r Rules) Fingerprint() string {
	b, _ := json.Marshal(r)
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:8])
}

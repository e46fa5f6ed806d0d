package enrich_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_enrich/internal/enrich"
)

func TestDefaultRulesAreValid(t *testing.T) {
	r := enrich.DefaultRules()
	require.NoError(t, r.Validate())

	th := r.Thresholds
	assert.Equal(t, 30, th.SmallMax)
	assert.Equal(t, 80, th.MediumMax)
	assert.Equal(t, 25, th.BoutiqueMax)
	assert.Equal(t, 80, th.LargeRoomsMin)
	assert.Equal(t, 160, th.LargeCapacityMin)
	assert.Equal(t, 3.0, th.BoutiqueMinStar)
	assert.True(t, th.ZeroRoomsUnknown)
	assert.Equal(t, enrich.MissingStarSkip, th.MissingStar)
	assert.Equal(t, enrich.FallbackEmpty, r.NameFallback)
	assert.NotEmpty(t, r.RestaurantKeywords)
	assert.NotEmpty(t, r.SpaKeywords)
}

func TestParseRulesNested(t *testing.T) {
	r, err := enrich.ParseRules([]byte(`
thresholds:
  boutique_max: 15
  missing_star: disqualify
  zero_rooms_unknown: false
spa_keywords: [spa, hammam]
name_fallback: original
output:
  clean_name: true
  department_name: true
`))
	require.NoError(t, err)

	assert.Equal(t, 15, r.Thresholds.BoutiqueMax)
	assert.Equal(t, 30, r.Thresholds.SmallMax, "absent keys keep defaults")
	assert.Equal(t, enrich.MissingStarDisqualify, r.Thresholds.MissingStar)
	assert.False(t, r.Thresholds.ZeroRoomsUnknown)
	assert.Equal(t, []string{"spa", "hammam"}, r.SpaKeywords)
	assert.Equal(t, enrich.DefaultRules().RestaurantKeywords, r.RestaurantKeywords)
	assert.Equal(t, enrich.FallbackOriginal, r.NameFallback)
	assert.True(t, r.Output.CleanName)
	assert.True(t, r.Output.DepartmentName)
}

func TestParseRulesFlatKeys(t *testing.T) {
	r, err := enrich.ParseRules([]byte(`
threshold_small_max: 20
threshold_medium_max: 60
threshold_large_capacity_min: 200
`))
	require.NoError(t, err)

	assert.Equal(t, 20, r.Thresholds.SmallMax)
	assert.Equal(t, 60, r.Thresholds.MediumMax)
	assert.Equal(t, 200, r.Thresholds.LargeCapacityMin)
	assert.Equal(t, 25, r.Thresholds.BoutiqueMax)
}

func TestParseRulesValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"small max", "thresholds: {small_max: 0}", enrich.ErrInvalidSmallMax},
		{"medium below small", "thresholds: {medium_max: 10}", enrich.ErrMediumBelowSmall},
		{"boutique max", "threshold_boutique_max: 0", enrich.ErrInvalidBoutiqueMax},
		{"large rooms", "thresholds: {large_rooms_min: -1}", enrich.ErrInvalidLargeRooms},
		{"large capacity", "thresholds: {large_capacity_min: -5}", enrich.ErrInvalidLargeCapacity},
		{"min star", "thresholds: {boutique_min_star: 6}", enrich.ErrInvalidMinStar},
		{"star policy", "thresholds: {missing_star: maybe}", enrich.ErrInvalidStarPolicy},
		{"name fallback", "name_fallback: guess", enrich.ErrInvalidNameFallback},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := enrich.ParseRules([]byte(tc.yaml))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParseRulesBadYAML(t *testing.T) {
	_, err := enrich.ParseRules([]byte("thresholds: ["))
	require.Error(t, err)
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("threshold_small_max: 12\n"), 0o644))

	r, err := enrich.LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, 12, r.Thresholds.SmallMax)

	_, err = enrich.LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestRulesFingerprint(t *testing.T) {
	a := enrich.DefaultRules()
	b := enrich.DefaultRules()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Fingerprint(), 16)

	b.Thresholds.SmallMax = 29
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

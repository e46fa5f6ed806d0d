package enrich_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hotel_enrich/internal/enrich"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":                "",
		"Hôtel SPA":       "hotel spa",
		"CHÂTEAU d'Œuvre": "chateau d'oeuvre",
		"Bien-Être":       "bien-etre",
		"already plain":   "already plain",
	}
	for in, want := range cases {
		got := enrich.Normalize(in)
		assert.Equal(t, want, got, "Normalize(%q)", in)
		assert.Equal(t, got, enrich.Normalize(got), "Normalize must be idempotent for %q", in)
	}
}

func TestContainsAny(t *testing.T) {
	assert.True(t, enrich.ContainsAny("Hôtel Spa des Alpes", []string{"spa"}))
	assert.True(t, enrich.ContainsAny("HÔTEL SPA DES ALPES", []string{"SPA"}))
	assert.True(t, enrich.ContainsAny("Résidence Bien-Être", []string{"bien-être"}))
	assert.True(t, enrich.ContainsAny("Hôtel Spa", []string{"sauna", "spa"}))
	assert.True(t, enrich.ContainsAny("Hôtel Spa", []string{"spa", "sauna"}))

	assert.False(t, enrich.ContainsAny("Hôtel Spa", nil))
	assert.False(t, enrich.ContainsAny("Hôtel Spa", []string{""}))
	assert.False(t, enrich.ContainsAny("", []string{"spa"}))
	assert.False(t, enrich.ContainsAny("Hôtel du Port", []string{"spa", "restaurant"}))
}

func TestAmenityFlags(t *testing.T) {
	rules := enrich.DefaultRules()

	assert.True(t, enrich.HasRestaurant("Auberge Brasserie du Marché", rules.RestaurantKeywords))
	assert.True(t, enrich.HasRestaurant("La Crêperie du Port", rules.RestaurantKeywords))
	assert.False(t, enrich.HasRestaurant("Hôtel du Port", rules.RestaurantKeywords))

	assert.True(t, enrich.HasSpa("Hôtel Thalasso Quiberon", rules.SpaKeywords))
	assert.True(t, enrich.HasSpa("Domaine Bien Être", rules.SpaKeywords))
	assert.False(t, enrich.HasSpa("Hôtel du Port", rules.SpaKeywords))
}

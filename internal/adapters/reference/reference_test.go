package reference_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_enrich/internal/adapters/reference"
	"hotel_enrich/internal/enrich"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadGeography(t *testing.T) {
	p := writeFile(t, "geo.csv", "department,region,department_name\n"+
		"75,Île-de-France,Paris\n"+
		" 2a ,Corse,Corse-du-Sud\n"+
		",Nowhere,\n")

	geo, err := reference.LoadGeography(p)
	require.NoError(t, err)
	assert.Len(t, geo, 2)
	assert.Equal(t, enrich.Department{Region: "Île-de-France", Name: "Paris"}, geo["75"])
	assert.Equal(t, "Corse", geo["2A"].Region)
}

func TestLoadGeographyWithoutNames(t *testing.T) {
	p := writeFile(t, "geo.csv", "department;region\n974;La Réunion\n")

	geo, err := reference.LoadGeography(p)
	require.NoError(t, err)
	assert.Equal(t, enrich.Department{Region: "La Réunion"}, geo["974"])
}

func TestLoadGroupDomains(t *testing.T) {
	p := writeFile(t, "groups.csv", "domain,group_name\n"+
		"ibis.com,Accor\n"+
		"https://www.BestWestern.fr/,Best Western\n"+
		"Louvre-Hotels.com , Louvre Hotels Group\n")

	groups, err := reference.LoadGroupDomains(p)
	require.NoError(t, err)
	assert.Equal(t, enrich.GroupDomains{
		"ibis.com":          "Accor",
		"bestwestern.fr":    "Best Western",
		"louvre-hotels.com": "Louvre Hotels Group",
	}, groups)
}

func TestLoadLookupErrors(t *testing.T) {
	_, err := reference.LoadGroupDomains(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)

	p := writeFile(t, "groups.csv", "host,group\nibis.com,Accor\n")
	_, err = reference.LoadGroupDomains(p)
	require.ErrorIs(t, err, reference.ErrMissingColumn)
}

func TestLoadMajorCities(t *testing.T) {
	p := writeFile(t, "cities.txt", "# préfectures\nParis\n\n  Saint-Étienne \nLYON\n")

	cities, err := reference.LoadMajorCities(p)
	require.NoError(t, err)
	assert.Len(t, cities, 3)
	assert.True(t, cities.Contains("saint-etienne"))
	assert.True(t, cities.Contains("lyon"))

	_, err = reference.LoadMajorCities(filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

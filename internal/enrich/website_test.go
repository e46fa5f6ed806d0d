package enrich_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hotel_enrich/internal/enrich"
)

func TestExtractDomain(t *testing.T) {
	cases := map[string]string{
		"https://www.ibis.com/hotel":      "ibis.com",
		"www.ibis.com":                    "ibis.com",
		"HTTPS://WWW.Accor.COM/fr/":       "accor.com",
		"http://book.hotel-paris.co.uk/x": "hotel-paris.co.uk",
		"lesremparts.fr":                  "lesremparts.fr",
		"http://myhotel.blogspot.com":     "blogspot.com",
		"https://www.ibis.com:8443/a?b=c": "ibis.com",
		"":                                "",
		"   ":                             "",
		"http://192.168.1.10/booking":     "",
		"http://localhost":                "",
		"com":                             "",
		"not a url":                       "",
	}
	for in, want := range cases {
		assert.Equal(t, want, enrich.ExtractDomain(in), "ExtractDomain(%q)", in)
	}
}

func TestClassifyAndGroupName(t *testing.T) {
	groups := enrich.GroupDomains{"ibis.com": "Accor"}

	d := enrich.ExtractDomain("https://www.ibis.com/hotel")
	assert.Equal(t, enrich.OwnershipGroup, enrich.Classify(d, groups))
	assert.Equal(t, "Accor", enrich.ResolveGroupName(d, groups))

	assert.Equal(t, enrich.OwnershipUnknown, enrich.Classify("", groups))
	assert.Empty(t, enrich.ResolveGroupName("", groups))

	assert.Equal(t, enrich.OwnershipIndependent, enrich.Classify("lesremparts.fr", groups))
	assert.Empty(t, enrich.ResolveGroupName("lesremparts.fr", groups))

	// an empty lookup still separates unknown from independent
	assert.Equal(t, enrich.OwnershipIndependent, enrich.Classify("ibis.com", nil))
}

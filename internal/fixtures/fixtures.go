// Package fixtures builds synthetic registry exports for demos and tests.
package fixtures

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"hotel_enrich/internal/domain"
)

type place struct {
	postal string
	city   string
}

// places pairs real postal codes with their commune so the geography and
// context stages have something to find.
var places = []place{
	{"75008", "Paris"}, {"75011", "Paris"}, {"69002", "Lyon"}, {"13001", "Marseille"},
	{"06000", "Nice"}, {"33000", "Bordeaux"}, {"31000", "Toulouse"}, {"44000", "Nantes"},
	{"67000", "Strasbourg"}, {"34000", "Montpellier"}, {"20000", "Ajaccio"}, {"20200", "Bastia"},
	{"97400", "Saint-Denis"}, {"74400", "Chamonix-Mont-Blanc"}, {"64200", "Biarritz"},
	{"17590", "Ars-en-Ré"}, {"56340", "Carnac"}, {"73150", "Val-d'Isère"}, {"24200", "Sarlat-la-Canéda"},
	{"12 345", "Villefranche"}, {"", ""},
}

var nameStems = []string{
	"HOTEL", "HÔTEL", "Hôtel", "Auberge", "Résidence", "Le Relais", "Hostellerie", "",
}

var nameSuffixes = []string{
	"", " & Spa", " Restaurant", " - Brasserie", " de la Plage", " du Lac", " Centre Gare",
	" Thalasso", " ***", " SARL", " Golf Resort",
}

var groupSites = []string{
	"https://all.accor.com/hotel/%d/index.fr.shtml",
	"https://www.ibis.com/fr/hotel-%d",
	"https://www.bestwestern.fr/fr/hotel-%d",
	"https://www.hotel-bb.com/fr/hotel/%d",
	"https://www.campanile.com/fr/hotels/%d",
}

var classTypes = []string{"HÔTEL DE TOURISME", "RÉSIDENCE DE TOURISME", "VILLAGE DE VACANCES"}

// Generate returns n rows carrying every required column. Equal seeds give
// equal tables.
func Generate(n int, seed int64) domain.Table {
	f := gofakeit.New(seed)
	t := domain.Table{Columns: append([]string(nil), domain.RequiredColumns...)}
	t.Rows = make([]domain.Row, 0, n)
	for i := 0; i < n; i++ {
		t.Rows = append(t.Rows, row(f))
	}
	return t
}

func row(f *gofakeit.Faker) domain.Row {
	p := places[f.Number(0, len(places)-1)]
	name := strings.TrimSpace(f.RandomString(nameStems) + " " + f.LastName() + f.RandomString(nameSuffixes))

	rooms := ""
	capacity := ""
	if f.Number(0, 9) > 0 {
		r := f.Number(0, 320)
		rooms = strconv.Itoa(r)
		capacity = strconv.Itoa(r*2 + f.Number(0, 20))
	}

	star := ""
	if f.Number(0, 5) > 0 {
		star = strconv.Itoa(f.Number(1, 5))
	}

	return domain.Row{
		domain.ColDateClassement:  f.Date().Format("02/01/2006"),
		domain.ColTypeHebergement: f.RandomString(classTypes),
		domain.ColStar:            star,
		domain.ColNomCommercial:   name,
		domain.ColAdresse:         f.Street(),
		domain.ColCodePostal:      p.postal,
		domain.ColCommune:         p.city,
		domain.ColWebsite:         website(f),
		domain.ColCapacite:        capacity,
		domain.ColChambres:        rooms,
		domain.ColEmailPrimary:    f.Email(),
		domain.ColEmailAdditional: "",
		domain.ColCountry:         "France",
		domain.ColPhonePrimary:    f.Phone(),
		domain.ColPhoneAdditional: "",
		domain.ColWebsiteStatus:   f.RandomString([]string{"ok", "ok", "not_found", ""}),
		domain.ColScrapingResult:  f.RandomString([]string{"success", "failed", ""}),
	}
}

func website(f *gofakeit.Faker) string {
	switch f.Number(0, 3) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf(f.RandomString(groupSites), f.Number(1000, 9999))
	default:
		return "www." + strings.ToLower(f.LastName()) + "-hotel.fr"
	}
}

package enrich

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// NameFallback decides what Clean returns when every word was stripped.
type NameFallback string

const (
	FallbackEmpty    NameFallback = "empty"
	FallbackOriginal NameFallback = "original"
)

var legalForms = []string{
	"sas", "sasu", "sarl", "sa", "snc", "eurl", "sci",
	"ltd", "llc", "inc", "corp", "gmbh",
}

var accommodationTypes = []string{
	"hotel", "hotels", "hotell", "hottel", "hotele",
	"hostel", "hostellerie", "hotellerie",
	"palace", "palaces", "camping", "campings", "residence", "residences",
	"village", "villages", "appart'hotel", "appart'hotels", "auberge", "auberges",
	"relais", "manoir", "manoirs", "chateau", "chateaux", "maison", "maisons",
	"domaine", "domaines", "gite", "gites", "lodge", "lodges", "hostels",
}

var amenityWords = []string{
	"restaurant", "brasserie", "bistro", "bistrot",
	"spa", "thalasso", "thalassotherapie", "wellness", "thermes",
	"golf", "resort", "bar", "cafe", "club",
}

// chainBrands covers the French and international groups seen in the
// registry. Phrases are matched whole; longer entries win over prefixes.
// Entries are written as they appear in names: words the earlier stages
// remove ("hotel", "club", "relais") are reduced to gaps when compiled.
var chainBrands = []string{
	"pierre et vacances", "pierre & vacances", "belambra", "accor", "accorhotels",
	"ibis", "ibis styles", "ibis budget", "novotel", "mercure", "sofitel",
	"pullman", "mgallery", "adagio", "mama shelter", "greet",
	"best western", "best western plus", "sure hotel",
	"kyriad", "kyriad prestige", "campanile", "premiere classe", "golden tulip",
	"louvre hotels", "b&b hotels", "b&b hotel", "logis", "logis hotels",
	"brit hotel", "the originals", "inter-hotel", "citotel", "contact hotel",
	"balladins", "fasthotel", "hotel f1", "formule 1",
	"holiday inn", "holiday inn express", "crowne plaza", "intercontinental",
	"hilton", "doubletree", "hampton", "marriott", "courtyard", "sheraton",
	"moxy", "radisson", "radisson blu", "park inn", "hyatt",
	"okko", "citizenm", "appart city", "citadines", "odalys", "lagrange",
	"madame vacances", "maeva", "nemea", "vvf", "center parcs", "club med",
	"relais & chateaux", "relais et chateaux", "les collectionneurs",
	"comfort inn", "quality hotel", "clarion",
}

// smallWords stay lower-case inside a name (never as its first word).
var smallWords = map[string]bool{
	"le": true, "la": true, "les": true, "l": true,
	"de": true, "des": true, "du": true, "d": true,
	"et": true, "à": true, "au": true, "aux": true, "en": true,
	"un": true, "une": true, "sur": true, "sous": true,
	"pour": true, "par": true, "avec": true, "sans": true,
}

// gap replaces a word removed by the type and amenity stages until the
// brand stage has run, so multi-word brands still match as phrases.
const gap = "\x00"

// letters or digits on either side of a match mean it is inside a word
const (
	wordStart = `(^|[^\p{L}\p{N}])`
	wordEnd   = `([^\p{L}\p{N}]|$)`
)

var foldClasses = map[rune]string{
	'a': "[aàâäáã]",
	'c': "[cç]",
	'e': "[eéèêë]",
	'i': "[iîïíì]",
	'n': "[nñ]",
	'o': "[oôöóò]",
	'u': "[uùûüú]",
	'y': "[yÿ]",
}

var (
	starsRe     = regexp.MustCompile(`(?i)` + wordStart + `\d+\s*(?:[eé]toiles?|stars?)` + wordEnd)
	asterisksRe = regexp.MustCompile(`[*★]+`)
)

// NameCleaner turns a registry trade name into a presentable hotel name.
// Build one with NewNameCleaner and share it; it holds only compiled patterns.
type NameCleaner struct {
	legal     *regexp.Regexp
	types     *regexp.Regexp
	amenities *regexp.Regexp
	brands    *regexp.Regexp
	fallback  NameFallback
}

func NewNameCleaner(fallback NameFallback) *NameCleaner {
	if fallback == "" {
		fallback = FallbackEmpty
	}
	c := &NameCleaner{
		legal:     wordRegexp(legalForms, dottedPattern),
		types:     wordRegexp(accommodationTypes, foldPattern),
		amenities: wordRegexp(amenityWords, foldPattern),
		fallback:  fallback,
	}
	c.brands = wordRegexp(c.reduceBrands(chainBrands), foldPattern)
	return c
}

// reduceBrands puts each brand through the stages that run before the
// brand stage, so "b&b hotel" becomes "b&b <gap>" like the names it must match.
func (c *NameCleaner) reduceBrands(brands []string) []string {
	seen := make(map[string]bool, len(brands))
	out := make([]string, 0, len(brands))
	for _, b := range brands {
		r := c.removeWords(stripAll(c.legal, strings.ToLower(b)))
		r = strings.Join(strings.Fields(r), " ")
		if strings.Trim(r, gap+" ") == "" || seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

// removeWords runs the type and amenity stages, leaving gaps.
func (c *NameCleaner) removeWords(s string) string {
	return gapAll(c.amenities, gapAll(c.types, s))
}

// Clean runs the cascade. Stage order matters: each stage sees the
// previous stage's output.
func (c *NameCleaner) Clean(name string) string {
	original := strings.TrimSpace(name)
	if original == "" {
		return ""
	}

	s := stripAll(c.legal, strings.ReplaceAll(original, gap, " "))
	s = c.removeWords(s)
	s = stripAll(c.brands, s)
	s = strings.ReplaceAll(s, gap, " ")
	s = stripAll(starsRe, s)
	s = asterisksRe.ReplaceAllString(s, " ")

	s = trimEdges(strings.Join(strings.Fields(s), " "))

	// a stray article left from "Le Relais" is not a name
	if onlySmallWords(s) {
		s = ""
	}
	if s == "" {
		if c.fallback != FallbackOriginal {
			return ""
		}
		s = strings.Join(strings.Fields(original), " ")
	}
	return properCase(s)
}

// stripAll removes every match, keeping the delimiters around it. A
// consumed delimiter hides an adjacent match from the same pass, so repeat
// while anything matches; each pass shortens s.
func stripAll(re *regexp.Regexp, s string) string {
	for re.MatchString(s) {
		s = re.ReplaceAllString(s, "${1}${2}")
	}
	return s
}

// gapAll is stripAll that leaves a gap where each match was.
func gapAll(re *regexp.Regexp, s string) string {
	for re.MatchString(s) {
		s = re.ReplaceAllString(s, "${1}"+gap+"${2}")
	}
	return s
}

func onlySmallWords(s string) bool {
	for _, w := range strings.Fields(s) {
		if !smallWords[strings.ToLower(strings.TrimFunc(w, unicode.IsPunct))] {
			return false
		}
	}
	return true
}

func wordRegexp(words []string, pattern func(string) string) *regexp.Regexp {
	sorted := append([]string(nil), words...)
	// leftmost-first alternation: longer phrases must be tried first
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	alts := make([]string, len(sorted))
	for i, w := range sorted {
		alts[i] = pattern(w)
	}
	return regexp.MustCompile(`(?i)` + wordStart + `(?:` + strings.Join(alts, "|") + `)` + wordEnd)
}

// foldPattern makes an ASCII word match its accented spellings, and lets
// apostrophes and spaces also match hyphens or nothing/any whitespace.
func foldPattern(word string) string {
	var b strings.Builder
	for _, r := range word {
		switch {
		case r == '\'':
			b.WriteString(`['’\s-]?`)
		case r == ' ' || r == '-':
			b.WriteString(`[\s-]+`)
		case r == 0:
			b.WriteString(`\x00`)
		case r == '&':
			b.WriteString(`\s*&\s*`)
		case foldClasses[r] != "":
			b.WriteString(foldClasses[r])
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String()
}

// dottedPattern accepts "SAS" as well as "S.A.S.".
func dottedPattern(word string) string {
	var b strings.Builder
	for _, r := range word {
		b.WriteString(regexp.QuoteMeta(string(r)))
		b.WriteString(`\.?`)
	}
	return b.String()
}

// trimEdges drops punctuation and spaces at both ends. A closing bracket
// survives when its opener is still in the string.
func trimEdges(s string) string {
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
	return strings.TrimRightFunc(s, func(r rune) bool {
		if unicode.IsSpace(r) || unicode.IsSymbol(r) {
			return true
		}
		if !unicode.IsPunct(r) {
			return false
		}
		switch r {
		case ')':
			return !strings.ContainsRune(s, '(')
		case ']':
			return !strings.ContainsRune(s, '[')
		}
		return true
	})
}

func properCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = caseWord(w, i == 0)
	}
	return strings.Join(words, " ")
}

// caseWord applies the small-word rule to each hyphen segment so
// "aix-en-provence" becomes "Aix-en-Provence". A letter after '&' is
// upper-cased too ("P&O").
func caseWord(w string, first bool) string {
	parts := strings.Split(strings.ToLower(w), "-")
	for j, p := range parts {
		if (j > 0 || !first) && smallWords[strings.TrimFunc(p, unicode.IsPunct)] {
			continue
		}
		parts[j] = upperFirstLetter(p)
	}
	return upperAfterAmpersand(strings.Join(parts, "-"))
}

func upperAfterAmpersand(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}
	rs := []rune(s)
	for i := 1; i < len(rs); i++ {
		if rs[i-1] == '&' {
			rs[i] = unicode.ToUpper(rs[i])
		}
	}
	return string(rs)
}

func upperFirstLetter(s string) string {
	rs := []rune(s)
	for i, r := range rs {
		if unicode.IsLetter(r) {
			rs[i] = unicode.ToUpper(r)
			break
		}
	}
	return string(rs)
}

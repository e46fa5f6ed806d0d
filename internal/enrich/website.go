package enrich

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Ownership is the chain/independent tri-state.
type Ownership string

const (
	OwnershipUnknown     Ownership = "unknown"
	OwnershipGroup       Ownership = "group"
	OwnershipIndependent Ownership = "independent"
)

// ExtractDomain returns the registrable domain of a website cell
// ("https://www.ibis.com/fr" -> "ibis.com"). A missing scheme is read as
// http. Private suffixes (blogspot.com, github.io) are not treated as
// suffixes. Any failure yields "".
func ExtractDomain(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if host == "" || net.ParseIP(host) != nil {
		return ""
	}
	return registrableDomain(host)
}

// registrableDomain is eTLD+1 restricted to the ICANN section of the list.
func registrableDomain(host string) string {
	suffix, icann := publicsuffix.PublicSuffix(host)
	for !icann {
		i := strings.IndexByte(suffix, '.')
		if i < 0 {
			// only the implicit "*" rule matched: unknown TLD
			return ""
		}
		suffix, icann = publicsuffix.PublicSuffix(suffix[i+1:])
	}
	if len(host) <= len(suffix) {
		return ""
	}
	rest := strings.TrimSuffix(host[:len(host)-len(suffix)], ".")
	if rest == "" {
		return ""
	}
	if i := strings.LastIndexByte(rest, '.'); i >= 0 {
		rest = rest[i+1:]
	}
	if rest == "" {
		return ""
	}
	return rest + "." + suffix
}

// Classify tells chain hotels from independents by their website domain.
func Classify(domain string, groups GroupDomains) Ownership {
	if domain == "" {
		return OwnershipUnknown
	}
	if _, ok := groups[domain]; ok {
		return OwnershipGroup
	}
	return OwnershipIndependent
}

// ResolveGroupName returns the group owning domain, "" when none.
func ResolveGroupName(domain string, groups GroupDomains) string {
	if domain == "" {
		return ""
	}
	return groups[domain]
}

// Package reference loads the flat-file lookups the enrichment runs against:
// department -> region, website domain -> hotel group, and major cities.
package reference

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"hotel_enrich/internal/adapters/tabular"
	"hotel_enrich/internal/domain"
	"hotel_enrich/internal/enrich"
)

// Lookup file column names.
const (
	ColDepartment     = "department"
	ColRegion         = "region"
	ColDepartmentName = "department_name"
	ColDomain         = "domain"
	ColGroupName      = "group_name"
)

var ErrMissingColumn = errors.New("lookup file is missing a column")

// LoadGeography reads a CSV with department and region columns, plus an
// optional department_name. Codes are stored upper-case.
func LoadGeography(path string) (enrich.GeographyLookup, error) {
	t, err := readCSV(path, ColDepartment, ColRegion)
	if err != nil {
		return nil, err
	}
	out := make(enrich.GeographyLookup, t.Len())
	for _, r := range t.Rows {
		code := strings.ToUpper(strings.TrimSpace(r.Get(ColDepartment)))
		if code == "" {
			continue
		}
		out[code] = enrich.Department{
			Region: strings.TrimSpace(r.Get(ColRegion)),
			Name:   strings.TrimSpace(r.Get(ColDepartmentName)),
		}
	}
	return out, nil
}

// LoadGroupDomains reads a CSV with domain and group_name columns. Entries
// written as URLs or with a www. prefix are reduced to their registrable
// domain so they match what ExtractDomain yields for a row.
func LoadGroupDomains(path string) (enrich.GroupDomains, error) {
	t, err := readCSV(path, ColDomain, ColGroupName)
	if err != nil {
		return nil, err
	}
	out := make(enrich.GroupDomains, t.Len())
	for _, r := range t.Rows {
		key := strings.ToLower(strings.TrimSpace(r.Get(ColDomain)))
		if key == "" {
			continue
		}
		if d := enrich.ExtractDomain(key); d != "" {
			key = d
		}
		out[key] = strings.TrimSpace(r.Get(ColGroupName))
	}
	return out, nil
}

// LoadMajorCities reads one city per line; blank lines and # comments are skipped.
func LoadMajorCities(path string) (enrich.MajorCities, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cities: %w", err)
	}
	var names []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cities: %w", err)
	}
	return enrich.NewMajorCities(names...), nil
}

func readCSV(path string, required ...string) (domain.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Table{}, fmt.Errorf("failed to read lookup: %w", err)
	}
	t, _, err := tabular.DecodeCSV(data)
	if err != nil {
		return domain.Table{}, fmt.Errorf("%s: %w", path, err)
	}
	for _, c := range required {
		if !t.HasColumn(c) {
			return domain.Table{}, fmt.Errorf("%s: %w: %q", path, ErrMissingColumn, c)
		}
	}
	return t, nil
}

package domain

import (
	"strconv"
	"strings"
)

// Registry column names, exactly as they appear in the source export.
const (
	ColDateClassement  = "DATE DE CLASSEMENT"
	ColTypeHebergement = "TYPE D'HÉBERGEMENT"
	ColStar            = "STAR"
	ColNomCommercial   = "NOM COMMERCIAL"
	ColAdresse         = "ADRESSE"
	ColCodePostal      = "CODE POSTAL"
	ColCommune         = "COMMUNE"
	ColWebsite         = "WEBSITE"
	ColCapacite        = "CAPACITÉ D'ACCUEIL (PERSONNES)"
	ColChambres        = "NOMBRE DE CHAMBRES"
	ColEmailPrimary    = "Email_Primary"
	ColEmailAdditional = "Email_Additional"
	ColCountry         = "Country"
	ColPhonePrimary    = "Phone_Primary"
	ColPhoneAdditional = "Phone_Additional"
	ColWebsiteStatus   = "Website_Status"
	ColScrapingResult  = "Scraping_Result"
)

// RequiredColumns must all be present before enrichment starts.
var RequiredColumns = []string{
	ColDateClassement, ColTypeHebergement, ColStar, ColNomCommercial,
	ColAdresse, ColCodePostal, ColCommune, ColWebsite,
	ColCapacite, ColChambres,
	ColEmailPrimary, ColEmailAdditional, ColCountry,
	ColPhonePrimary, ColPhoneAdditional, ColWebsiteStatus, ColScrapingResult,
}

// Row maps a column name to its text value. A missing key and "" are both null.
type Row map[string]string

// Get returns the value for col, "" when absent.
func (r Row) Get(col string) string { return r[col] }

// Clone returns a shallow copy sized for extra columns.
func (r Row) Clone(extra int) Row {
	out := make(Row, len(r)+extra)
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered set of rows sharing one header.
type Table struct {
	Columns []string
	Rows    []Row
}

// Len is the number of data rows (header excluded).
func (t Table) Len() int { return len(t.Rows) }

// HasColumn reports whether col is part of the header.
func (t Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Head returns a table with at most n rows sharing the same header.
func (t Table) Head(n int) Table {
	if n < 0 || n > len(t.Rows) {
		n = len(t.Rows)
	}
	return Table{Columns: append([]string(nil), t.Columns...), Rows: t.Rows[:n]}
}

// Records flattens the table in column order, header first.
func (t Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, append([]string(nil), t.Columns...))
	for _, r := range t.Rows {
		rec := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			rec[i] = r[c]
		}
		out = append(out, rec)
	}
	return out
}

// FromRecords builds a table from a header line and data lines.
// Header names are trimmed and made unique; short lines are padded with blanks.
func FromRecords(header []string, lines [][]string) Table {
	cols := uniqueColumns(header)
	rows := make([]Row, 0, len(lines))
	for _, line := range lines {
		r := make(Row, len(cols))
		for i, c := range cols {
			if i < len(line) {
				r[c] = line[i]
			} else {
				r[c] = ""
			}
		}
		rows = append(rows, r)
	}
	return Table{Columns: cols, Rows: rows}
}

// ValidateColumns fails with a *SchemaError listing every missing required column.
func ValidateColumns(t Table) error {
	var missing []string
	for _, c := range RequiredColumns {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing, Available: append([]string(nil), t.Columns...)}
	}
	return nil
}

// uniqueColumns names blank headers "Unnamed: <index>" and suffixes repeats
// ".1", ".2", ... so no input column shares a row key with another.
func uniqueColumns(header []string) []string {
	cols := make([]string, len(header))
	used := make(map[string]bool, len(header))
	repeats := make(map[string]int)
	for i, h := range header {
		c := strings.TrimSpace(h)
		if c == "" {
			c = "Unnamed: " + strconv.Itoa(i)
		}
		base := c
		for used[c] {
			repeats[base]++
			c = base + "." + strconv.Itoa(repeats[base])
		}
		used[c] = true
		cols[i] = c
	}
	return cols
}

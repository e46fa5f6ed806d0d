package enrich

import (
	"math"
	"strconv"
	"strings"
)

// CleanPostalCode undoes spreadsheet damage to a postal code: whitespace,
// a ".0" float suffix, lost leading zeros. It does not check the length.
func CleanPostalCode(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	if len(s) < 5 && isDigits(s) {
		s = strings.Repeat("0", 5-len(s)) + s
	}
	return s
}

// ParseOptionalInt parses a count such as "1 200", "45.0" or "12,5" and
// truncates toward zero. nil on blank or unparsable input. A literal 0 is kept.
func ParseOptionalInt(raw string) *int {
	f := ParseOptionalFloat(raw)
	if f == nil {
		return nil
	}
	if *f > math.MaxInt32 || *f < math.MinInt32 {
		return nil
	}
	n := int(*f)
	return &n
}

// ParseOptionalFloat has the same null policy as ParseOptionalInt without truncation.
func ParseOptionalFloat(raw string) *float64 {
	s := cleanNumber(raw)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// cleanNumber drops thousands separators and turns a decimal comma into a point.
// When both '.' and ',' appear the dots are read as thousands separators ("1.234,5").
func cleanNumber(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '\'', '_', '\t':
			return -1
		}
		return r
	}, s)
	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
		}
		s = strings.Replace(s, ",", ".", 1)
	}
	// strconv accepts these spellings; a registry cell never means them.
	switch strings.ToLower(s) {
	case "nan", "inf", "+inf", "-inf", "infinity", "+infinity", "-infinity":
		return ""
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

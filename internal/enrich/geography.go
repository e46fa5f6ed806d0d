package enrich

import (
	"strconv"
	"strings"
)

// InferDepartment derives the department code from a cleaned postal code.
// Anything but exactly five digits yields "".
func InferDepartment(postalCode string) string {
	if len(postalCode) != 5 || !isDigits(postalCode) {
		return ""
	}
	switch {
	case strings.HasPrefix(postalCode, "97"), strings.HasPrefix(postalCode, "98"):
		return postalCode[:3]
	case strings.HasPrefix(postalCode, "20"):
		v, _ := strconv.Atoi(postalCode)
		switch {
		case v >= 20000 && v <= 20199:
			return "2A"
		case v >= 20200 && v <= 20699:
			return "2B"
		}
	}
	return postalCode[:2]
}

func ResolveRegion(department string, lookup GeographyLookup) string {
	d, ok := lookupDepartment(department, lookup)
	if !ok {
		return ""
	}
	return d.Region
}

func ResolveDepartmentName(department string, lookup GeographyLookup) string {
	d, ok := lookupDepartment(department, lookup)
	if !ok {
		return ""
	}
	return d.Name
}

func lookupDepartment(department string, lookup GeographyLookup) (Department, bool) {
	key := strings.ToUpper(strings.TrimSpace(department))
	if key == "" || lookup == nil {
		return Department{}, false
	}
	d, ok := lookup[key]
	return d, ok
}

package shared_test

import (
	"testing"
	"time"

	"hotel_enrich/internal/shared"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"MYSQL_DSN", "RULES_PATH", "ENRICH_WORKERS", "CACHE_TTL_SECONDS", "API_RPS", "MAX_UPLOAD_BYTES"} {
		t.Setenv(k, "")
	}
	c := shared.Load()
	if c.MySQLDSN != "" {
		t.Fatalf("sink must be disabled by default, got %q", c.MySQLDSN)
	}
	if c.CacheTTL != 15*time.Minute || c.APIRPS != 20 || c.MaxUploadBytes != 32<<20 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.GeographyPath != "data/department_to_region_fr.csv" {
		t.Fatalf("geography path: %s", c.GeographyPath)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENRICH_WORKERS", "3")
	t.Setenv("API_RPS", "2.5")
	t.Setenv("CACHE_TTL_SECONDS", "not-a-number")
	c := shared.Load()
	if c.Workers != 3 || c.APIRPS != 2.5 {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.CacheTTL != 15*time.Minute {
		t.Fatalf("bad number must fall back to default, got %s", c.CacheTTL)
	}
}

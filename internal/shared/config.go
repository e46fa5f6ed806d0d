package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string // empty disables the output sink
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	RulesPath        string
	GeographyPath    string
	GroupDomainsPath string
	MajorCitiesPath  string

	Workers        int
	CacheTTL       time.Duration
	APIRPS         float64
	APIBurst       int
	MaxUploadBytes int64
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		MySQLDSN:    env("MYSQL_DSN", ""),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),

		RulesPath:        env("RULES_PATH", ""),
		GeographyPath:    env("GEOGRAPHY_PATH", "data/department_to_region_fr.csv"),
		GroupDomainsPath: env("GROUP_DOMAINS_PATH", "data/hotel_groups_domains.csv"),
		MajorCitiesPath:  env("MAJOR_CITIES_PATH", "data/major_cities_fr.txt"),

		Workers:        atoi("ENRICH_WORKERS", 0),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		APIRPS:         atof("API_RPS", 20),
		APIBurst:       atoi("API_BURST", 40),
		MaxUploadBytes: int64(atoi("MAX_UPLOAD_BYTES", 32<<20)),
	}
	if c.RulesPath == "" {
		log.Debug().Msg("RULES_PATH is empty, built-in rules apply")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

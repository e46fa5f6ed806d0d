package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	server "hotel_enrich/internal/adapters/http_server"
	"hotel_enrich/internal/adapters/observability"
	redisad "hotel_enrich/internal/adapters/redis"
	"hotel_enrich/internal/adapters/tabular"
	"hotel_enrich/internal/app"
	"hotel_enrich/internal/enrich"
	"hotel_enrich/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.RegisterDefault()
	observability.Serve()

	rules, err := app.LoadRules(log.Logger, cfg.RulesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("rules load failed")
	}
	lookups := app.LoadLookups(log.Logger, app.LookupPaths{
		Geography:    cfg.GeographyPath,
		GroupDomains: cfg.GroupDomainsPath,
		MajorCities:  cfg.MajorCitiesPath,
	})
	pipe := enrich.NewPipeline(rules, lookups, enrich.WithWorkers(cfg.Workers))

	// deps
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cache.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, requests will bypass the cache")
	}
	cancel()
	q := app.NewQueryService(pipe, lookups, tabular.CSVCodec{BOM: true}, cache, cfg.CacheTTL)

	// http
	srv := server.New(server.WithLogger(log.Logger), server.WithRateLimit(cfg.APIRPS, cfg.APIBurst))
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, MaxUpload: cfg.MaxUploadBytes})

	log.Info().Str("addr", cfg.HTTPAddr).Str("rules", rules.Fingerprint()).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

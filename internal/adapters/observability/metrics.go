package observability

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"hotel_enrich/internal/enrich"
)

const namespace = "hotel_enrich"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	EnrichRows = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "rows_total", Help: "Rows enriched."},
	)
	Classifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "classifications_total", Help: "Derived labels per field."},
		[]string{"field", "value"},
	)
	RunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "run_duration_seconds",
			Help:    "Enrichment run duration seconds.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
		},
		[]string{"source"}, // source: batch|api
	)
	Runs = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "runs_total", Help: "Enrichment runs by outcome."},
		[]string{"source", "status"},
	)
)

func Serve() {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

var collectors = []prometheus.Collector{
	HTTPRequests, HTTPLatency, CacheEvents, EnrichRows, Classifications, RunDuration, Runs,
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors...)
	return reg
}

// RegisterDefault exposes the collectors on the global registry used by Serve.
func RegisterDefault() {
	for _, c := range collectors {
		if err := prometheus.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				log.Warn().Err(err).Msg("metric registration failed")
			}
		}
	}
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

// ObserveRun records one enrichment pass. Stats are only counted on success.
func ObserveRun(source string, s enrich.Stats, dur time.Duration, err error) {
	RunDuration.WithLabelValues(source).Observe(dur.Seconds())
	Runs.WithLabelValues(source, LabelErr(err)).Inc()
	if err != nil {
		return
	}
	EnrichRows.Add(float64(s.Rows))
	for k, n := range s.Ownership {
		Classifications.WithLabelValues("independent_or_group", string(k)).Add(float64(n))
	}
	for k, n := range s.Sizes {
		Classifications.WithLabelValues("size_segment", string(k)).Add(float64(n))
	}
	for k, n := range s.Contexts {
		Classifications.WithLabelValues("hotel_context", string(k)).Add(float64(n))
	}
	Classifications.WithLabelValues("restaurant_flag", "true").Add(float64(s.Restaurant))
	Classifications.WithLabelValues("spa_flag", "true").Add(float64(s.Spa))
	Classifications.WithLabelValues("boutique_flag", "true").Add(float64(s.Boutique))
	Classifications.WithLabelValues("large_property_flag", "true").Add(float64(s.LargeProperty))
}

func LabelErr(err error) string {
	if err == nil {
		return "none"
	}
	return fmt.Sprintf("%T", err)
}

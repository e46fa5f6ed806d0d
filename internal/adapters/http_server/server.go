package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

type Server struct{ mux *chi.Mux }

type options struct {
	log     zerolog.Logger
	timeout time.Duration
	rps     float64
	burst   int
}

type Option func(*options)

func WithLogger(l zerolog.Logger) Option { return func(o *options) { o.log = l } }

func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

// WithRateLimit caps requests per second across all clients. rps <= 0 disables it.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *options) { o.rps, o.burst = rps, burst }
}

func New(opts ...Option) *Server {
	o := options{log: log.Logger, timeout: 15 * time.Second}
	for _, fn := range opts {
		fn(&o)
	}

	m := chi.NewRouter()

	// middlewares go before any route
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Timeout(o.timeout))
	m.Use(Metrics)
	m.Use(Logger(o.log))
	if o.rps > 0 {
		burst := o.burst
		if burst < 1 {
			burst = 1
		}
		m.Use(RateLimit(rate.NewLimiter(rate.Limit(o.rps), burst)))
	}

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}

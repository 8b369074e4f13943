package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Timeout    time.Duration
	RateRPS    float64
	RateBurst  int
	TrustProxy bool
}

type Server struct {
	mux     *chi.Mux
	limiter *RateLimiter
}

func New(opts Options) *Server {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	m := chi.NewRouter()

	// All middlewares go here (before any routes are added)
	if opts.TrustProxy {
		m.Use(chimw.RealIP)
	}
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Timeout(opts.Timeout))
	m.Use(Metrics)
	m.Use(Logger(log.Logger))

	s := &Server{mux: m}
	if opts.RateRPS > 0 {
		s.limiter = NewRateLimiter(opts.RateRPS, opts.RateBurst)
	}
	return s
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}

package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/mandel/pkg/observability"
	"github.com/matzehuels/mandel/pkg/pipeline"
)

// Config configures a Server. Zero values select the defaults noted on each
// field, except MaxPixels and Limit where zero is itself a setting.
type Config struct {
	// Addr is the listen address (":8080").
	Addr string

	// MaxPixels caps width*height of a single render. Zero disables the
	// check.
	MaxPixels int

	// Limit is the iteration limit used when a request omits it. Zero is a
	// valid limit that renders every pixel black; callers normally fill it
	// from config.DefaultLimit.
	Limit uint32

	// Workers, Palette, Mapping, Theme and Format are the defaults for
	// requests that omit them.
	Workers int
	Palette string
	Mapping string
	Theme   string
	Format  string

	// JPEGQuality is passed to the JPEG encoder (90).
	JPEGQuality int

	ReadTimeout     time.Duration // 10s
	WriteTimeout    time.Duration // 1m
	ShutdownTimeout time.Duration // 10s
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.Format == "" {
		c.Format = "png"
	}
	if c.JPEGQuality == 0 {
		c.JPEGQuality = 90
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = time.Minute
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
}

// Server serves the HTTP API. It is safe for concurrent use.
type Server struct {
	cfg      Config
	runner   *pipeline.Runner
	logger   *log.Logger
	counters *observability.Counters
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithCounters exposes c on /api/v1/stats. The caller is responsible for
// registering c as hooks.
func WithCounters(c *observability.Counters) Option {
	return func(s *Server) { s.counters = c }
}

// New creates a server that renders through runner.
func New(runner *pipeline.Runner, cfg Config, logger *log.Logger, opts ...Option) *Server {
	cfg.setDefaults()
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s := &Server{cfg: cfg, runner: runner, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", s.handleHealth)
		r.Get("/regions", s.handleRegions)
		r.Get("/stats", s.handleStats)
		r.Get("/render", s.handleRender)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
	})
	return r
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/nlquery/internal/core/ports/driving"
	"github.com/custodia-labs/nlquery/internal/logger"
)

// ErrMissingTranslationService is returned when the translation service is not provided.
var ErrMissingTranslationService = errors.New("httpapi: translation service is required")

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	// Translation is required.
	Translation driving.TranslationService

	// Search enables POST /api/search when set.
	Search driving.SearchService

	// Health enables component checks on GET /health when set.
	Health driving.HealthService
}

// Config tunes the router.
type Config struct {
	// RateLimit is the sustained requests per second allowed on the
	// model-backed routes. Zero disables limiting.
	RateLimit float64

	// Burst is the limiter bucket size.
	Burst int

	// RequestTimeout bounds each request. Zero means DefaultRequestTimeout.
	RequestTimeout time.Duration

	// Mounts attaches extra handlers under path prefixes, e.g. /mcp.
	Mounts map[string]http.Handler
}

// DefaultRequestTimeout bounds a request when Config leaves it unset.
const DefaultRequestTimeout = 60 * time.Second

// NewRouter builds the chi router for ports.
func NewRouter(ports Ports, cfg Config) (http.Handler, error) {
	if ports.Translation == nil {
		return nil, ErrMissingTranslationService
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	h := &handlers{ports: ports}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", h.health)
	for prefix, handler := range cfg.Mounts {
		r.Mount(prefix, handler)
	}

	r.Route("/api", func(r chi.Router) {
		if cfg.RateLimit > 0 {
			r.Use(rateLimit(cfg.RateLimit, cfg.Burst))
		}
		r.Post("/translate", h.translate)
		if ports.Search != nil {
			r.Post("/search", h.search)
		}
	})

	return r, nil
}

// Server runs the router on a listen address.
type Server struct {
	handler http.Handler
}

// NewServer creates a server for ports.
func NewServer(ports Ports, cfg Config) (*Server, error) {
	handler, err := NewRouter(ports, cfg)
	if err != nil {
		return nil, err
	}
	return &Server{handler: handler}, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP API listening on %s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

// Package server provides the HTTP server for the lookup API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/heliobs/magpie/internal/server/handlers"
	"github.com/heliobs/magpie/internal/server/middleware"
	"github.com/heliobs/magpie/pkg/catalogs"
	pkgerrors "github.com/heliobs/magpie/pkg/errors"
	"github.com/heliobs/magpie/pkg/logging"
)

// shutdownTimeout bounds connection draining on shutdown.
const shutdownTimeout = 30 * time.Second

// Server holds the HTTP server state and dependencies.
type Server struct {
	service   handlers.Service
	schemas   *catalogs.Table
	logger    *zerolog.Logger
	config    Config
	limiter   *middleware.RateLimiter
	version   string
	startTime time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger replaces the default logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithVersion sets the version string reported by the health endpoint.
func WithVersion(version string) Option {
	return func(s *Server) {
		if version != "" {
			s.version = version
		}
	}
}

// WithSchemas replaces the built-in catalog schema table reported by
// the registry endpoints.
func WithSchemas(t *catalogs.Table) Option {
	return func(s *Server) {
		if t != nil {
			s.schemas = t
		}
	}
}

// New creates a new server instance with the given configuration.
func New(service handlers.Service, cfg Config, opts ...Option) (*Server, error) {
	if service == nil {
		return nil, pkgerrors.NewConfigError("server", "lookup service cannot be nil", nil)
	}

	s := &Server{
		service:   service,
		schemas:   catalogs.Builtin(),
		logger:    logging.Default(),
		config:    cfg,
		version:   "dev",
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if cfg.RateLimit > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimit, s.logger)
	}

	return s, nil
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}

// ListenAndServe runs the HTTP server until ctx is cancelled, then
// drains connections and shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("addr", httpServer.Addr).
			Str("prefix", s.config.PathPrefix).
			Msg("HTTP server listening")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		s.shutdownBackground()
		return pkgerrors.WrapIO("serve", httpServer.Addr, err)
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown signal received")

		// The parent context is already cancelled, draining needs
		// its own deadline.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := httpServer.Shutdown(shutdownCtx)
		s.shutdownBackground()
		if err != nil {
			return pkgerrors.WrapIO("shutdown", httpServer.Addr, err)
		}

		s.logger.Info().Msg("Server stopped gracefully")
		return nil
	}
}

func (s *Server) shutdownBackground() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

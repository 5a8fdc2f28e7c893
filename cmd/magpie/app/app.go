// Package app provides the application context and dependency management
// for the magpie CLI. It follows idiomatic Go patterns for CLI applications
// by centralizing configuration, dependency injection, and lifecycle management.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/heliobs/magpie"
	"github.com/heliobs/magpie/pkg/errors"
)

// App represents the magpie application with all its dependencies.
// It provides a centralized place for configuration, logging, and
// the lookup client, following the dependency injection pattern.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Lookup client (lazy-initialized, singleton)
	mu     sync.RWMutex
	client magpie.Client
}

// New creates a new App instance with the given version information.
// The app is initialized with default configuration that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "failed to load configuration", err)
	}
	app.config = config

	// Initialize logger
	logger := NewLogger(config)
	app.logger = &logger

	// Apply any custom options
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Client returns the lookup client, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Client() (magpie.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	// Create client with options from config
	opts := a.buildClientOptions()
	c, err := magpie.New(opts...)
	if err != nil {
		return nil, errors.NewConfigError("app", "failed to create client", err)
	}

	a.client = c
	return c, nil
}

// ClientWithOptions returns a new lookup client layering custom options
// on top of the configured defaults. This is useful for commands whose
// flags override the app configuration (e.g. lookup with a custom
// radius or cache path). The caller owns the returned client and must
// close it.
func (a *App) ClientWithOptions(opts ...magpie.Option) (magpie.Client, error) {
	c, err := magpie.New(append(a.buildClientOptions(), opts...)...)
	if err != nil {
		return nil, errors.NewConfigError("app", "failed to create client with custom options", err)
	}
	return c, nil
}

// Shutdown performs graceful shutdown of the application.
// It closes the lookup client and releases the cache database.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	c := a.client
	a.client = nil
	a.mu.Unlock()

	if c != nil {
		if err := c.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close client during shutdown")
			return err
		}
	}

	return nil
}

// buildClientOptions constructs client options from the app configuration.
func (a *App) buildClientOptions() []magpie.Option {
	opts := []magpie.Option{
		magpie.WithLogger(a.logger),
	}

	if a.config.CacheDisabled {
		opts = append(opts, magpie.WithCacheDisabled())
	} else if a.config.CachePath != "" {
		opts = append(opts, magpie.WithCachePath(a.config.CachePath))
	}

	if a.config.SearchRadius > 0 {
		opts = append(opts, magpie.WithSearchRadius(a.config.SearchRadius))
	}
	if a.config.Timeout > 0 {
		opts = append(opts, magpie.WithTimeout(a.config.Timeout))
	}

	if a.config.GaiaURL != "" {
		opts = append(opts, magpie.WithGaiaURL(a.config.GaiaURL))
	}
	if a.config.VizierURL != "" {
		opts = append(opts, magpie.WithVizierURL(a.config.VizierURL))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom lookup client (useful for testing).
func WithClient(c magpie.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}

package cmd

import (
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/heliobs/magpie/internal/server"
	"github.com/heliobs/magpie/pkg/errors"
)

// NewServeCommand creates the serve command with app dependencies.
func NewServeCommand(app App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: "core",
		Aliases: []string{"server"},
		Short:   "Start the REST API server",
		Long: `Start an HTTP server exposing lookups over a REST API.

Endpoints:
  GET /api/v1/lookup      Resolve a target (name, ra, dec, gaia_id, radius)
  GET /api/v1/bands       The photometric band registry
  GET /api/v1/catalogs    The catalog schema table
  GET /healthz            Liveness and uptime
  GET /metrics            Prometheus metrics

Responses for repeated lookups are served from the local query cache.
The server drains in-flight requests on SIGINT/SIGTERM before exiting.`,
		Example: `  # Start on the default port 8080
  magpie serve

  # Custom bind address and rate limit
  magpie serve --host 0.0.0.0 --port 3000 --rate-limit 120

  # Allow browser clients from specific origins
  magpie serve --cors-origins "https://example.com"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, app)
		},
	}

	defaults := server.DefaultConfig()

	// Server configuration flags
	cmd.Flags().Int("port", defaults.Port, "Server port")
	cmd.Flags().String("host", defaults.Host, "Bind address")
	cmd.Flags().String("prefix", defaults.PathPrefix, "API path prefix")

	// CORS flags
	cmd.Flags().Bool("cors", false, "Enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (comma-separated)")

	// Performance flags
	cmd.Flags().Int("rate-limit", defaults.RateLimit, "Requests per minute per IP (0 to disable)")

	// Timeout flags
	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")

	// Feature flags
	cmd.Flags().Bool("metrics", defaults.MetricsEnabled, "Enable the Prometheus metrics endpoint")

	return cmd
}

// runServe starts the API server and blocks until the context is cancelled.
func runServe(cmd *cobra.Command, app App) error {
	cfg := parseServerConfig(cmd)
	logger := app.Logger()

	client, err := app.Client()
	if err != nil {
		return err
	}

	// Long-running process: purge expired cache entries periodically
	// instead of relying on the lazy purge alone.
	if err := client.MaintenanceOn(); err != nil {
		logger.Debug().Err(err).Msg("Cache maintenance not started")
	} else {
		defer func() { _ = client.MaintenanceOff() }()
	}

	srv, err := server.New(client, cfg,
		server.WithLogger(logger),
		server.WithVersion(app.Version()),
		server.WithSchemas(client.Schemas()),
	)
	if err != nil {
		return errors.NewConfigError("serve", "failed to create server", err)
	}

	logger.Info().
		Str("addr", cfg.Addr()).
		Str("prefix", cfg.PathPrefix).
		Bool("cors", cfg.CORSEnabled).
		Int("rate_limit", cfg.RateLimit).
		Msg("Starting API server")

	// cmd.Context() carries the signal handling from main.go, so a
	// SIGINT/SIGTERM triggers the graceful drain inside ListenAndServe.
	return srv.ListenAndServe(cmd.Context())
}

// parseServerConfig parses command flags into server configuration.
func parseServerConfig(cmd *cobra.Command) server.Config {
	cfg := server.DefaultConfig()

	cfg.Port = mustGetInt(cmd, "port")
	cfg.Host = mustGetString(cmd, "host")
	cfg.PathPrefix = mustGetString(cmd, "prefix")
	cfg.CORSEnabled = mustGetBool(cmd, "cors")
	cfg.CORSOrigins = mustGetStringSlice(cmd, "cors-origins")
	cfg.RateLimit = mustGetInt(cmd, "rate-limit")
	cfg.ReadTimeout = mustGetDuration(cmd, "read-timeout")
	cfg.WriteTimeout = mustGetDuration(cmd, "write-timeout")
	cfg.IdleTimeout = mustGetDuration(cmd, "idle-timeout")
	cfg.MetricsEnabled = mustGetBool(cmd, "metrics")

	// Origins imply CORS without requiring both flags
	if len(cfg.CORSOrigins) > 0 {
		cfg.CORSEnabled = true
	}

	// Environment overrides for containerized deployments
	if envPort := os.Getenv("HTTP_PORT"); envPort != "" {
		if p, err := parsePort(envPort); err == nil {
			cfg.Port = p
		}
	}
	if envHost := os.Getenv("HTTP_HOST"); envHost != "" {
		cfg.Host = envHost
	}

	return cfg
}

// parsePort safely parses a port string to integer.
func parsePort(portStr string) (int, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, errors.NewValidationError("port", portStr, "not a number")
	}
	if port < 1 || port > 65535 {
		return 0, errors.NewValidationError("port", port, "out of range")
	}
	return port, nil
}

// mustGetInt retrieves an int flag value or panics if the flag doesn't exist.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetStringSlice retrieves a string slice flag value or panics if the flag doesn't exist.
func mustGetStringSlice(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetDuration retrieves a duration flag value or panics if the flag doesn't exist.
func mustGetDuration(cmd *cobra.Command, name string) time.Duration {
	val, err := cmd.Flags().GetDuration(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

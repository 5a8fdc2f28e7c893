package server

import (
	"net"
	"strconv"
	"time"
)

// Config holds server configuration.
type Config struct {
	// Listen address.
	Host string
	Port int

	// PathPrefix is prepended to the API routes. Health probes and
	// metrics stay at the root.
	PathPrefix string

	// Cross-origin policy. An empty origin list with CORSEnabled set
	// admits any origin.
	CORSEnabled bool
	CORSOrigins []string

	// RateLimit is requests per minute per IP. Zero disables limiting.
	RateLimit int

	// HTTP server timeouts.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// MetricsEnabled exposes the Prometheus registry on /metrics.
	MetricsEnabled bool
}

// DefaultConfig returns a Config with sensible defaults.
//
// Lookups fan out to remote archives, so the write timeout has to
// cover a full resolution run, not a local read.
func DefaultConfig() Config {
	return Config{
		Host:           "localhost",
		Port:           8080,
		PathPrefix:     "/api/v1",
		RateLimit:      60,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   5 * time.Minute,
		IdleTimeout:    120 * time.Second,
		MetricsEnabled: true,
	}
}

// Addr returns the host:port the server binds to.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Package constants provides shared constants used throughout the magpie codebase.
// This includes timeouts, limits, file permissions, and astrometric defaults
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to archive services
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// QueryTimeout is the timeout for a single archive query (TAP or VizieR)
	QueryTimeout = 2 * time.Minute

	// LookupTimeout bounds a full resolution run (identity + region query + merge)
	LookupTimeout = 5 * time.Minute

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// ServerShutdownTimeout is how long the HTTP server waits for in-flight requests
	ServerShutdownTimeout = 10 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureFilePermissions is for sensitive files (rw-------)
	SecureFilePermissions = 0600
)

// Astrometric defaults
const (
	// DefaultSearchRadiusArcsec is the cone search radius when the caller
	// does not supply one
	DefaultSearchRadiusArcsec = 20.0

	// ArcsecPerDegree converts search radii to the degrees the archives expect
	ArcsecPerDegree = 3600.0
)

// Network constants
const (
	// DialTimeout is the timeout for establishing network connections
	DialTimeout = 10 * time.Second

	// KeepAliveInterval is the interval between keep-alive probes
	KeepAliveInterval = 30 * time.Second

	// MaxIdleConnections is the maximum number of idle connections in the pool
	MaxIdleConnections = 100

	// MaxResponseBytes caps how much of an archive response is read (32 MB)
	MaxResponseBytes = 32 * 1024 * 1024
)

// Cache constants
const (
	// DefaultCacheTTL is the default time-to-live for cached archive responses
	DefaultCacheTTL = 24 * time.Hour

	// CacheCleanupInterval is how often expired cache rows are purged
	CacheCleanupInterval = 1 * time.Hour
)

// Server constants
const (
	// DefaultServerAddr is the default listen address for serve mode
	DefaultServerAddr = ":8080"

	// ServerReadHeaderTimeout bounds how long a client may take to send headers
	ServerReadHeaderTimeout = 10 * time.Second
)

// Path constants
const (
	// DefaultConfigName is the config file viper looks for in the home directory
	DefaultConfigName = ".magpie"

	// DefaultCacheFile is the default cache database filename under the
	// user cache directory
	DefaultCacheFile = "magpie-cache.db"
)

// Format constants
const (
	// TimeFormatISO8601 is the ISO 8601 time format
	TimeFormatISO8601 = time.RFC3339

	// TimeFormatFilename is the format used in generated filenames
	TimeFormatFilename = "20060102-150405"
)

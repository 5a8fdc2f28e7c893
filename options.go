package magpie

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/heliobs/magpie/pkg/catalogs"
	"github.com/heliobs/magpie/pkg/constants"
	"github.com/heliobs/magpie/pkg/errors"
	"github.com/heliobs/magpie/pkg/logging"
	"github.com/heliobs/magpie/pkg/resolve"
	"github.com/heliobs/magpie/pkg/warning"
)

// options holds the configured options for a Client.
type options struct {
	schemas        *catalogs.Table
	radius         float64
	timeout        time.Duration
	skipPhotometry bool

	cacheEnabled bool
	cachePath    string

	gaiaURL   string
	vizierURL string

	logger       *zerolog.Logger
	warnReporter warning.Reporter

	// test and embedding seams, replacing the archive clients
	identity resolve.Identity
	querier  resolve.Querier
}

func defaultOptions() *options {
	return &options{
		schemas:      catalogs.Builtin(),
		radius:       constants.DefaultSearchRadiusArcsec,
		timeout:      constants.QueryTimeout,
		cacheEnabled: true,
	}
}

// log returns the configured logger, or the package default.
func (o *options) log() *zerolog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return logging.Default()
}

// Option is a function that configures a Client instance.
type Option func(*options) error

// WithSearchRadius sets the cone search and region query radius in
// arcseconds.
func WithSearchRadius(arcsec float64) Option {
	return func(o *options) error {
		if arcsec <= 0 {
			return errors.NewValidationError("radius", arcsec, "must be positive")
		}
		o.radius = arcsec
		return nil
	}
}

// WithSchemas replaces the built-in catalog schema table.
func WithSchemas(t *catalogs.Table) Option {
	return func(o *options) error {
		if t == nil {
			return errors.NewConfigError("client", "schema table cannot be nil", nil)
		}
		o.schemas = t
		return nil
	}
}

// WithPhotometryDisabled restricts lookups to identity and stellar
// parameters, skipping the region query and merge entirely.
func WithPhotometryDisabled() Option {
	return func(o *options) error {
		o.skipPhotometry = true
		return nil
	}
}

// WithTimeout bounds each archive request.
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return errors.NewValidationError("timeout", d, "must be positive")
		}
		o.timeout = d
		return nil
	}
}

// WithCachePath stores the query cache database at the given path
// instead of the user cache directory.
func WithCachePath(path string) Option {
	return func(o *options) error {
		o.cachePath = path
		return nil
	}
}

// WithCacheDisabled turns off response caching; every lookup hits the
// archives.
func WithCacheDisabled() Option {
	return func(o *options) error {
		o.cacheEnabled = false
		return nil
	}
}

// WithGaiaURL points the identity service at a different TAP endpoint.
func WithGaiaURL(u string) Option {
	return func(o *options) error {
		o.gaiaURL = u
		return nil
	}
}

// WithVizierURL points region queries at a different VizieR mirror.
func WithVizierURL(u string) Option {
	return func(o *options) error {
		o.vizierURL = u
		return nil
	}
}

// WithLogger attaches a logger to every lookup context.
func WithLogger(l *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = l
		return nil
	}
}

// WithWarningReporter adds a live warning sink alongside the per-run
// record on each result.
func WithWarningReporter(rep warning.Reporter) Option {
	return func(o *options) error {
		o.warnReporter = rep
		return nil
	}
}

// WithIdentity replaces the Gaia identity service. Intended for tests
// and for embedding alternative identity backends.
func WithIdentity(id resolve.Identity) Option {
	return func(o *options) error {
		if id == nil {
			return errors.NewConfigError("client", "identity service cannot be nil", nil)
		}
		o.identity = id
		return nil
	}
}

// WithQuerier replaces the VizieR region query service.
func WithQuerier(q resolve.Querier) Option {
	return func(o *options) error {
		if q == nil {
			return errors.NewConfigError("client", "query service cannot be nil", nil)
		}
		o.querier = q
		return nil
	}
}

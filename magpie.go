// Package magpie resolves astronomical targets against photometric
// survey catalogs and produces one deduplicated vector of magnitudes,
// uncertainties, and provenance.
//
// A lookup runs in three stages: the target is identified in Gaia DR2
// (cone search unless a source id is supplied), the archive's
// best-neighbour tables provide cross-match identifiers for the other
// surveys, and a single VizieR region query supplies the catalog rows
// that are then merged band by band, first writer wins. Conditions
// that merely cost data (a missing counterpart, a masked cell, an
// unavailable catalog) are reported as warnings on the result, never
// as errors.
//
// Example usage:
//
//	client, err := magpie.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	res, err := client.Lookup(ctx, "HD 42777", 91.784, 23.911)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, m := range res.Photometry {
//	    fmt.Printf("%-18s %7.3f ± %.3f  (%s)\n", m.Band, m.Mag, m.Err, m.Source)
//	}
//	for _, w := range res.Warnings {
//	    fmt.Println("warning:", w)
//	}
//
//	// Configure with custom options
//	client, err = magpie.New(
//	    magpie.WithSearchRadius(10),
//	    magpie.WithCachePath("/tmp/magpie.db"),
//	    magpie.WithTimeout(30*time.Second),
//	)
package magpie

import (
	"context"
	"sync"
	"time"

	"github.com/heliobs/magpie/internal/cache"
	"github.com/heliobs/magpie/internal/metrics"
	"github.com/heliobs/magpie/internal/sources/gaia"
	"github.com/heliobs/magpie/internal/sources/vizier"
	"github.com/heliobs/magpie/internal/transport"
	"github.com/heliobs/magpie/pkg/catalogs"
	"github.com/heliobs/magpie/pkg/logging"
	"github.com/heliobs/magpie/pkg/resolve"
	"github.com/heliobs/magpie/pkg/target"
	"github.com/heliobs/magpie/pkg/warning"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Client resolves targets against the survey catalogs.
type Client interface {
	// Resolve runs the full pipeline for one target.
	Resolve(ctx context.Context, t target.Target) (*Result, error)

	// Lookup resolves a target given its name and ICRS coordinates in
	// decimal degrees. It is shorthand for Resolve with a bare target.
	Lookup(ctx context.Context, name string, ra, dec float64) (*Result, error)

	// Schemas returns the catalog schema table in use.
	Schemas() *catalogs.Table

	// Maintainer provides access to background cache maintenance controls
	Maintainer

	// Close releases held resources, including the query cache.
	Close() error
}

// client is the internal implementation of the Client interface.
type client struct {
	options  *options
	resolver *resolve.Resolver

	// cache is nil when caching is disabled or unavailable
	cache *cache.Cache

	// cache maintenance state
	maintMu     sync.Mutex
	maintCancel context.CancelFunc

	closeOnce sync.Once
	closeErr  error
}

// New creates a new Client instance with the given options.
func New(opts ...Option) (Client, error) {
	options := defaultOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	tr := transport.New(transport.WithTimeout(options.timeout))

	// The cache degrades to a pass-through when it cannot be opened:
	// losing caching must not make targets unresolvable.
	var store *cache.Cache
	if options.cacheEnabled {
		var err error
		store, err = cache.Open(options.cachePath)
		if err != nil {
			options.log().Warn().Err(err).Msg("Query cache unavailable, continuing without it")
			store = nil
		}
	}

	identity := options.identity
	if identity == nil {
		gaiaOpts := []gaia.Option{gaia.WithTransport(tr)}
		if options.gaiaURL != "" {
			gaiaOpts = append(gaiaOpts, gaia.WithTAPURL(options.gaiaURL))
		}
		if store != nil {
			gaiaOpts = append(gaiaOpts, gaia.WithCache(store))
		}
		identity = gaia.New(gaiaOpts...)
	}

	querier := options.querier
	if querier == nil {
		vizOpts := []vizier.Option{
			vizier.WithTransport(tr),
			vizier.WithCatalogs(options.schemas.VizierIDs()),
		}
		if options.vizierURL != "" {
			vizOpts = append(vizOpts, vizier.WithBaseURL(options.vizierURL))
		}
		if store != nil {
			vizOpts = append(vizOpts, vizier.WithCache(store))
		}
		querier = vizier.New(vizOpts...)
	}

	resOpts := []resolve.Option{
		resolve.WithSchemas(options.schemas),
		resolve.WithRadius(options.radius),
		resolve.WithReporter(options.reporter()),
	}
	if options.skipPhotometry {
		resOpts = append(resOpts, resolve.WithPhotometryDisabled())
	}

	resolver, err := resolve.New(identity, querier, resOpts...)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, err
	}

	return &client{
		options:  options,
		resolver: resolver,
		cache:    store,
	}, nil
}

// Resolve runs the full pipeline for one target.
func (c *client) Resolve(ctx context.Context, t target.Target) (*Result, error) {
	if c.options.logger != nil {
		ctx = c.options.logger.WithContext(ctx)
	}

	start := time.Now()
	res, err := c.resolver.Resolve(ctx, t)
	if err != nil {
		metrics.RecordLookupError()
		return nil, err
	}
	metrics.RecordLookup(time.Since(start).Seconds(), len(res.Photometry))

	logging.Ctx(ctx).Info().
		Str("target", t.Name).
		Int64("source_id", res.SourceID).
		Int("bands", len(res.Photometry)).
		Int("warnings", len(res.Warnings)).
		Dur("elapsed", time.Since(start)).
		Msg("Lookup complete")
	return res, nil
}

// Lookup resolves a target given its name and coordinates.
func (c *client) Lookup(ctx context.Context, name string, ra, dec float64) (*Result, error) {
	return c.Resolve(ctx, target.New(name, ra, dec))
}

// Schemas returns the catalog schema table in use.
func (c *client) Schemas() *catalogs.Table {
	return c.resolver.Schemas()
}

// Close releases the query cache. It is safe to call more than once.
func (c *client) Close() error {
	c.closeOnce.Do(func() {
		_ = c.MaintenanceOff()
		if c.cache != nil {
			c.closeErr = c.cache.Close()
		}
	})
	return c.closeErr
}

// reporter assembles the live warning sink: metrics always, plus the
// caller's reporter when one was configured.
func (o *options) reporter() warning.Reporter {
	if o.warnReporter != nil {
		return warning.Tee(metrics.WarningReporter{}, o.warnReporter)
	}
	return metrics.WarningReporter{}
}

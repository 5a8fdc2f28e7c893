// Package vizier queries the CDS VizieR service for every photometric
// catalog around a position and parses its asu-tsv responses into
// tables.
package vizier

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/heliobs/magpie/internal/cache"
	"github.com/heliobs/magpie/internal/metrics"
	"github.com/heliobs/magpie/internal/transport"
	"github.com/heliobs/magpie/pkg/constants"
	"github.com/heliobs/magpie/pkg/logging"
	"github.com/heliobs/magpie/pkg/resolve"
	"github.com/heliobs/magpie/pkg/table"
	"github.com/heliobs/magpie/pkg/target"
)

// DefaultBaseURL is the asu-tsv endpoint of the CDS VizieR mirror.
const DefaultBaseURL = "https://vizier.cds.unistra.fr/viz-bin/asu-tsv"

const service = "vizier"

// Client queries VizieR for catalog rows around a position.
type Client struct {
	transport *transport.Client
	baseURL   string
	cache     *cache.Cache
	catalogs  []string
}

var _ resolve.Querier = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different VizieR mirror.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithTransport replaces the HTTP transport.
func WithTransport(t *transport.Client) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithCache enables response caching.
func WithCache(store *cache.Cache) Option {
	return func(c *Client) {
		c.cache = store
	}
}

// WithCatalogs restricts the region query to the named catalogs. An
// empty list queries all of VizieR.
func WithCatalogs(ids []string) Option {
	return func(c *Client) {
		c.catalogs = ids
	}
}

// New creates a VizieR client.
func New(opts ...Option) *Client {
	c := &Client{
		transport: transport.New(transport.WithTimeout(constants.QueryTimeout)),
		baseURL:   DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// QueryRegion fetches every catalog row within radiusArcsec of pos.
// Row limits are disabled and all columns are requested, matching how
// the photometry schemas expect to read the tables.
func (c *Client) QueryRegion(ctx context.Context, pos target.Position, radiusArcsec float64) (table.Set, error) {
	body, err := c.fetch(ctx, pos, radiusArcsec)
	if err != nil {
		return nil, err
	}

	set, err := ParseTSV(body)
	if err != nil {
		return nil, err
	}

	logging.Debug().
		Int("tables", len(set)).
		Float64("ra", pos.RA).
		Float64("dec", pos.Dec).
		Float64("radius_arcsec", radiusArcsec).
		Msg("vizier region query parsed")
	return set, nil
}

func (c *Client) fetch(ctx context.Context, pos target.Position, radiusArcsec float64) ([]byte, error) {
	key := cache.Key(service,
		strconv.FormatFloat(pos.RA, 'f', 6, 64),
		strconv.FormatFloat(pos.Dec, 'f', 6, 64),
		strconv.FormatFloat(radiusArcsec, 'f', -1, 64),
		strings.Join(c.catalogs, ","))

	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			logging.Debug().Err(err).Msg("vizier cache read failed")
		}
		if ok {
			metrics.RecordCacheHit(service)
			return body, nil
		}
		metrics.RecordCacheMiss(service)
	}

	params := url.Values{}
	params.Set("-c", fmt.Sprintf("%.6f %+.6f", pos.RA, pos.Dec))
	params.Set("-c.rs", strconv.FormatFloat(radiusArcsec, 'f', -1, 64))
	params.Set("-out.max", "unlimited")
	params.Set("-out.all", "1")
	if len(c.catalogs) > 0 {
		params.Set("-source", strings.Join(c.catalogs, " "))
	}

	start := time.Now()
	resp, err := c.transport.Get(ctx, c.baseURL, params)
	if err != nil {
		metrics.RecordArchiveRequest(service, time.Since(start).Seconds(), false)
		return nil, err
	}
	body, err := c.transport.ReadBody(resp, service)
	metrics.RecordArchiveRequest(service, time.Since(start).Seconds(), err == nil)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, key, body); err != nil {
			logging.Debug().Err(err).Msg("caching vizier response failed")
		}
	}
	return body, nil
}

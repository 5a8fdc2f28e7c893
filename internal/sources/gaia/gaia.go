// Package gaia implements the identity side of a lookup against the
// ESA Gaia TAP service: nearest-source cone search, stellar parameters
// with the DR2 corrections applied, and best-neighbour cross-matches
// into the other photometric catalogs.
package gaia

import (
	"context"
	"net/url"
	"time"

	"github.com/heliobs/magpie/internal/cache"
	"github.com/heliobs/magpie/internal/metrics"
	"github.com/heliobs/magpie/internal/transport"
	"github.com/heliobs/magpie/pkg/constants"
	"github.com/heliobs/magpie/pkg/errors"
	"github.com/heliobs/magpie/pkg/logging"
)

// DefaultTAPURL is the synchronous query endpoint of the ESA Gaia
// archive.
const DefaultTAPURL = "https://gea.esac.esa.int/tap-server/tap/sync"

const service = "gaia"

// Client runs ADQL queries against the Gaia TAP service.
type Client struct {
	transport *transport.Client
	tapURL    string
	cache     *cache.Cache
}

// Option configures a Client.
type Option func(*Client)

// WithTAPURL points the client at a different TAP endpoint.
func WithTAPURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.tapURL = u
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

// New creates a Gaia TAP client.
func New(opts ...Option) *Client {
	c := &Client{
		transport: transport.New(transport.WithTimeout(constants.QueryTimeout)),
		tapURL:    DefaultTAPURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// query runs one synchronous ADQL query and decodes the json result.
func (c *Client) query(ctx context.Context, adql string) (*Rows, error) {
	key := cache.Key(service, adql)

	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			logging.Debug().Err(err).Msg("gaia cache read failed")
		}
		if ok {
			metrics.RecordCacheHit(service)
			return ParseTAP(body)
		}
		metrics.RecordCacheMiss(service)
	}

	form := url.Values{}
	form.Set("REQUEST", "doQuery")
	form.Set("LANG", "ADQL")
	form.Set("FORMAT", "json")
	form.Set("QUERY", adql)

	start := time.Now()
	resp, err := c.transport.PostForm(ctx, c.tapURL, form)
	if err != nil {
		metrics.RecordArchiveRequest(service, time.Since(start).Seconds(), false)
		return nil, errors.NewQueryError(service, adql, err)
	}
	body, err := c.transport.ReadBody(resp, service)
	metrics.RecordArchiveRequest(service, time.Since(start).Seconds(), err == nil)
	if err != nil {
		return nil, errors.NewQueryError(service, adql, err)
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, key, body); err != nil {
			logging.Debug().Err(err).Msg("caching gaia response failed")
		}
	}
	return ParseTAP(body)
}

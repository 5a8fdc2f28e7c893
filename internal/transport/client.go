// Package transport provides the HTTP plumbing shared by the archive
// clients: a pooled client with magpie defaults, common headers, and
// size-capped response decoding.
package transport

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heliobs/magpie/pkg/constants"
	pkgerrors "github.com/heliobs/magpie/pkg/errors"
)

// DefaultUserAgent identifies magpie to the archive services. CDS asks
// robotic clients to be identifiable.
const DefaultUserAgent = "magpie/1.0 (+https://github.com/heliobs/magpie)"

// Client provides HTTP client functionality tuned for archive queries.
type Client struct {
	http      *http.Client
	userAgent string
	maxBody   int64
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely.
// Useful for tests and for callers that manage their own transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithUserAgent overrides the User-Agent header sent to the archives.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMaxResponseBytes caps how much of a response body is read.
func WithMaxResponseBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// New creates a transport client with magpie defaults.
func New(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{
			Timeout: constants.DefaultHTTPTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   constants.DialTimeout,
					KeepAlive: constants.KeepAliveInterval,
				}).DialContext,
				MaxIdleConns:        constants.MaxIdleConnections,
				MaxIdleConnsPerHost: constants.MaxIdleConnections,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: DefaultUserAgent,
		maxBody:   constants.MaxResponseBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do performs an HTTP request with common headers applied.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "*/*")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, wrapRequestError(req, c.http.Timeout, err)
	}
	return resp, nil
}

// Get performs a GET request against url with params encoded into the
// query string.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) (*http.Response, error) {
	target := rawURL
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		target = rawURL + sep + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, pkgerrors.WrapValidation("url", err)
	}
	return c.Do(req)
}

// PostForm performs a form-encoded POST request, the shape TAP
// synchronous queries expect.
func (c *Client) PostForm(ctx context.Context, rawURL string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, pkgerrors.WrapValidation("url", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.Do(req)
}

// wrapRequestError maps transport failures onto the error taxonomy.
// Timeouts keep their identity; everything else reads as the service
// being unreachable.
func wrapRequestError(req *http.Request, timeout time.Duration, err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return pkgerrors.NewTimeoutError("http request", timeout.String(), req.URL.Host)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return pkgerrors.NewTimeoutError("http request", timeout.String(), req.URL.Host)
	}
	if errors.Is(err, context.Canceled) {
		return pkgerrors.ErrCanceled
	}
	return &pkgerrors.APIError{
		Service:  req.URL.Host,
		Message:  "request failed",
		Endpoint: req.URL.String(),
		Err:      err,
	}
}

// Package transport fetches wiki pages over HTTP and caches them on disk.
package transport

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/agentstation/astromap/pkg/constants"
	"github.com/agentstation/astromap/pkg/errors"
	"github.com/agentstation/astromap/pkg/logging"
)

// Fetcher returns the HTML of a wiki page by name.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Client fetches pages from the wiki with browser-like headers. Requests
// share one rate limiter, so a Client may be used from many goroutines.
type Client struct {
	http    *resty.Client
	baseURL string
}

type options struct {
	baseURL   string
	timeout   time.Duration
	userAgent string
	limit     rate.Limit
	burst     int
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL sets the wiki root that page names are appended to.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		if baseURL != "" {
			o.baseURL = baseURL
		}
	}
}

// WithTimeout bounds each request.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithUserAgent overrides the browser user agent.
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}

// WithRateLimit sets the request rate and burst. rate.Inf disables limiting.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(o *options) {
		o.limit = limit
		o.burst = burst
	}
}

// New creates a Client.
func New(opts ...Option) *Client {
	o := &options{
		baseURL:   constants.DefaultBaseURL,
		timeout:   constants.DefaultHTTPTimeout,
		userAgent: constants.UserAgent,
		limit:     rate.Limit(constants.RequestsPerSecond),
		burst:     constants.RequestBurst,
	}
	for _, opt := range opts {
		opt(o)
	}

	httpClient := resty.New()
	httpClient.SetTimeout(o.timeout)
	httpClient.SetHeaders(map[string]string{
		"User-Agent":      o.userAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
	})

	// the wiki asks crawlers to stay polite; burst >= 1 keeps Wait from failing
	limiter := rate.NewLimiter(o.limit, o.burst)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	return &Client{http: httpClient, baseURL: o.baseURL}
}

// URL returns the wiki URL for a page name.
func (c *Client) URL(name string) string {
	base := c.baseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + url.PathEscape(name)
}

// Fetch downloads a page once. Any status other than 200 is a
// *errors.FetchError.
func (c *Client) Fetch(ctx context.Context, name string) ([]byte, error) {
	pageURL := c.URL(name)
	logger := logging.FromContext(ctx)
	logger.Debug().Str("url", pageURL).Msg("Fetching page")

	start := time.Now()
	resp, err := c.http.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return nil, &errors.FetchError{URL: pageURL, Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &errors.FetchError{URL: pageURL, StatusCode: resp.StatusCode()}
	}

	logger.Debug().
		Str("url", pageURL).
		Int("bytes", len(resp.Body())).
		Dur("elapsed", time.Since(start)).
		Msg("Fetched page")
	return resp.Body(), nil
}

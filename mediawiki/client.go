// Package mediawiki provides the Wikipedia binding of the content-service
// interfaces via the MediaWiki Action API.
package mediawiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/wikicorpus"
	"golang.org/x/time/rate"
)

// Client defaults.
const (
	DefaultLanguage          = "en"
	DefaultTimeout           = 10 * time.Second
	DefaultRequestsPerSecond = 10.0
	DefaultUserAgent         = "wikicorpus (github.com/fwojciec/wikicorpus)"
)

// Compile-time interface verification.
var (
	_ wikicorpus.CategoryService = (*Client)(nil)
	_ wikicorpus.PageService     = (*Client)(nil)
	_ wikicorpus.AuthorService   = (*Client)(nil)
)

// Client talks to a MediaWiki Action API endpoint. It implements the
// category listing, page content, and author lookup services against a
// single wiki, with client-side rate limiting.
type Client struct {
	httpClient *http.Client
	converter  wikicorpus.Converter
	apiURL     string
	userAgent  string
	limiter    *rate.Limiter
	timeout    time.Duration
	rps        float64
}

// Option configures a Client.
type Option func(*Client)

// WithLanguage points the client at the given Wikipedia language edition.
// Defaults to DefaultLanguage.
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.apiURL = fmt.Sprintf("https://%s.wikipedia.org/w/api.php", lang)
	}
}

// WithAPIURL overrides the full API endpoint URL. Takes precedence over
// WithLanguage; used for non-Wikipedia wikis and tests.
func WithAPIURL(apiURL string) Option {
	return func(c *Client) {
		c.apiURL = apiURL
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
// Wikimedia's API etiquette asks clients to identify themselves.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithTimeout sets the per-request timeout. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit caps the request rate in requests per second.
// Defaults to DefaultRequestsPerSecond.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		c.rps = rps
	}
}

// NewClient creates a Client. The converter renders section body HTML into
// the text stored on sections.
func NewClient(conv wikicorpus.Converter, opts ...Option) *Client {
	c := &Client{
		converter: conv,
		userAgent: DefaultUserAgent,
		timeout:   DefaultTimeout,
		rps:       DefaultRequestsPerSecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.apiURL == "" {
		WithLanguage(DefaultLanguage)(c)
	}
	c.httpClient = &http.Client{Timeout: c.timeout}
	c.limiter = rate.NewLimiter(rate.Limit(c.rps), 1)
	return c
}

// apiError is the error object the Action API embeds in responses.
type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

// toError maps an API error to a domain error.
func (e *apiError) toError() error {
	if e.Code == "missingtitle" || e.Code == "invalidtitle" {
		return wikicorpus.Errorf(wikicorpus.ENOTFOUND, "wikipedia API: %s", e.Info)
	}
	return wikicorpus.Errorf(wikicorpus.EUNAVAILABLE, "wikipedia API: %s (%s)", e.Info, e.Code)
}

// get performs one rate-limited API request and decodes the JSON response
// into v. All requests use JSON formatversion 2.
func (c *Client) get(ctx context.Context, params url.Values, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	params.Set("format", "json")
	params.Set("formatversion", "2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return wikicorpus.Errorf(wikicorpus.EUNAVAILABLE, "wikipedia API returned HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return wikicorpus.Errorf(wikicorpus.EINTERNAL, "decoding API response: %v", err)
	}

	return nil
}

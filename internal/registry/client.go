// Package registry fetches the component index and component entries from a
// static JSON registry served over HTTP.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	liberrors "github.com/lib-shared/lib-shared/internal/errors"
	"github.com/lib-shared/lib-shared/internal/logging"
)

// MaxResponseSize caps how much of a registry response body is read.
const MaxResponseSize = 4 << 20

// DefaultTimeout is used when no timeout option is given.
const DefaultTimeout = 30 * time.Second

// Client is a read-only HTTP client for the registry. Every call performs a
// single GET; nothing is cached and nothing is retried.
type Client struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Zero leaves the transport default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = timeout
		c.http = &hc
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger.WithComponent("registry")
		}
	}
}

// NewClient creates a client for the registry rooted at baseURL. The base URL
// is expected to be validated already and carry no trailing slash.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the registry root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// IndexURL is the location of the registry index.
func (c *Client) IndexURL() string {
	return c.baseURL + "/registry.json"
}

// EntryURL is the location of the entry for a component. Callers must have
// validated name before building a URL from it.
func (c *Client) EntryURL(name string) string {
	return c.baseURL + "/" + name + ".json"
}

// FetchJSON performs a GET on url and decodes the JSON body into v.
func (c *Client) FetchJSON(ctx context.Context, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return liberrors.NewNetworkError(liberrors.ErrCodeInvalidURL, "cannot build registry request", err).
			WithContext("url", url)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug(ctx, "Fetching registry resource", "url", logging.SanitizeForLog(url))

	resp, err := c.http.Do(req)
	if err != nil {
		return liberrors.NewNetworkError(liberrors.ErrCodeRegistryUnreachable, "could not reach registry", err).
			WithContext("url", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return liberrors.NewRegistryError(
			liberrors.ErrCodeRegistryStatus,
			fmt.Sprintf("registry returned status %d", resp.StatusCode),
			nil,
		).WithContext("url", url).WithContext("status", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return liberrors.NewNetworkError(liberrors.ErrCodeRegistryUnreachable, "reading registry response", err).
			WithContext("url", url)
	}
	if len(body) > MaxResponseSize {
		return liberrors.NewRegistryError(
			liberrors.ErrCodeRegistryDecode,
			fmt.Sprintf("registry response exceeds %d bytes", MaxResponseSize),
			nil,
		).WithContext("url", url)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return liberrors.NewRegistryError(liberrors.ErrCodeRegistryDecode, "invalid registry JSON", err).
			WithContext("url", url)
	}

	c.logger.Debug(ctx, "Fetched registry resource", "url", logging.SanitizeForLog(url), "bytes", len(body))
	return nil
}

// FetchIndex downloads the registry index.
func (c *Client) FetchIndex(ctx context.Context) (*Index, error) {
	var raw json.RawMessage
	if err := c.FetchJSON(ctx, c.IndexURL(), &raw); err != nil {
		return nil, err
	}
	return ParseIndex(raw)
}

// FetchEntry downloads and shape-checks the entry for name.
func (c *Client) FetchEntry(ctx context.Context, name string) (*Entry, error) {
	var raw json.RawMessage
	if err := c.FetchJSON(ctx, c.EntryURL(name), &raw); err != nil {
		return nil, err
	}
	entry, err := ParseEntry(name, raw)
	if err != nil {
		c.logger.Warn(ctx, err, "Rejected registry entry", "name", name)
		return nil, err
	}
	return entry, nil
}

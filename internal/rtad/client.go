package rtad

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rileyhilliard/rtad/internal/errors"
)

// Fetcher retrieves rows newer than a cursor. *Client implements it;
// tests substitute fakes.
type Fetcher interface {
	Fetch(ctx context.Context, kind TableKind, cursor Cursor) ([]Entry, error)
}

// maxErrorBody caps how much of an error response is quoted back.
const maxErrorBody = 512

// Client fetches RTAD tables from the metrics backend.
type Client struct {
	baseURL   string
	http      *http.Client
	headers   map[string]string
	userAgent string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithHeaders adds headers sent with every request.
func WithHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a client for the backend at baseURL. A zero timeout
// leaves requests unbounded.
func NewClient(baseURL string, timeout time.Duration, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: timeout},
		headers:   make(map[string]string),
		userAgent: "rtad-cli",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// URL builds the request URL for kind at cursor.
func (c *Client) URL(kind TableKind, cursor Cursor) string {
	u := c.baseURL + kind.Path()
	if q := cursor.Query(); len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// Fetch issues GET /rtad_<kind>[?last_id=N] and decodes the ascending-id
// JSON array. An unset cursor fetches the full set.
func (c *Client) Fetch(ctx context.Context, kind TableKind, cursor Cursor) ([]Entry, error) {
	target := c.URL(kind, cursor)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFetch,
			"Cannot build request for "+kind.Path(),
			"Check server.base_url in your .rtad.yaml")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFetch,
			fmt.Sprintf("Request to %s failed", kind.Path()),
			fmt.Sprintf("Check that the metrics backend is reachable at %s", c.baseURL))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, errors.WrapWithCode(
			fmt.Errorf("%s", strings.TrimSpace(string(body))),
			errors.ErrFetch,
			fmt.Sprintf("%s returned HTTP %d", kind.Path(), resp.StatusCode),
			"Check the backend logs; the next tick will retry")
	}

	entries, err := kind.Decode(resp.Body)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFetch,
			fmt.Sprintf("Cannot decode %s response", kind.Path()),
			"The backend should return a JSON array of rows")
	}
	return entries, nil
}

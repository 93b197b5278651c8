package api

import (
	"log/slog"
	"net/http"
	"time"
)

// Default client settings.
const (
	DefaultTimeout      = 15 * time.Second
	DefaultRetryBackoff = time.Second
)

// Headers carrying a CoinGecko key, one per plan.
const (
	DemoKeyHeader = "x-cg-demo-api-key"
	ProKeyHeader  = "x-cg-pro-api-key"
)

// Plan is a CoinGecko subscription tier. It decides which header carries the key.
type Plan string

const (
	PlanDemo Plan = "demo"
	PlanPro  Plan = "pro"
)

// KeyHeader returns the header for the plan's key. Unknown plans use the demo header.
func (p Plan) KeyHeader() string {
	if p == PlanPro {
		return ProKeyHeader
	}
	return DemoKeyHeader
}

// Client provides access to the price REST API.
type Client struct {
	baseURL    string
	header     http.Header // sent on every request
	httpClient *http.Client
	logger     *slog.Logger

	maxRetries   int
	retryBackoff time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a client for baseURL. It sends no key and issues exactly
// one request per call unless configured otherwise.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:      baseURL,
		header:       http.Header{"Accept": []string{"application/json"}},
		httpClient:   &http.Client{Timeout: DefaultTimeout},
		logger:       slog.Default(),
		retryBackoff: DefaultRetryBackoff,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithAPIKey sends key in the header of the given plan. An empty key is ignored.
func WithAPIKey(plan Plan, key string) ClientOption {
	return func(c *Client) {
		if key == "" {
			return
		}
		c.header.Del(DemoKeyHeader)
		c.header.Del(ProKeyHeader)
		c.header.Set(plan.KeyHeader(), key)
	}
}

// WithTimeout bounds each request, including reading the body. Non-positive
// values keep the default.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRetries allows max extra attempts on 429 and 5xx responses.
func WithRetries(max int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = max
		c.retryBackoff = backoff
	}
}

// WithLogger sets the logger. nil keeps slog.Default().
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the HTTP client. Apply WithTimeout after it to
// change its timeout.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

package wikibase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/ppedin/wikibase-api/internal/logging"
	"github.com/ppedin/wikibase-api/internal/retry"
	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

const (
	restPrefix      = "/rest.php/wikibase/v1"
	actionPath      = "/api.php"
	healthProperty  = "P1"
	maxResponseSize = 1 << 20
	userAgent       = "wikibase-api/1.0"
)

// Config holds what a Client needs to reach one Wikibase instance.
type Config struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration
}

// Validate checks that the instance URL and credentials are present.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("%w: wikibase base URL is required", wbapi.ErrInvalidConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: wikibase base URL %q must be an absolute http(s) URL", wbapi.ErrInvalidConfig, c.BaseURL)
	}
	if c.Username == "" {
		return fmt.Errorf("%w: wikibase username is required", wbapi.ErrInvalidConfig)
	}
	if c.Password == "" {
		return fmt.Errorf("%w: wikibase password is required", wbapi.ErrInvalidConfig)
	}
	return nil
}

// Client talks to one Wikibase instance. It is safe for concurrent use.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
	reads    *retry.Executor
	logger   wbapi.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithRetry sets the executor used for idempotent reads.
func WithRetry(e *retry.Executor) Option {
	return func(c *Client) {
		c.reads = e
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(l wbapi.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient validates cfg and creates a client. Reads are not retried
// unless WithRetry is given.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = wbapi.DefaultHTTPTimeout
	}

	c := &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		username: cfg.Username,
		password: cfg.Password,
		http:     &http.Client{Timeout: timeout},
		reads:    retry.NoRetry(),
		logger:   logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the instance URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// response is a fully read HTTP response.
type response struct {
	status int
	body   []byte
}

// send performs one request. A non-nil payload is encoded as JSON.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload any) (*response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	c.logger.Verbose("%s %s -> %d (%s)", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	return &response{status: resp.StatusCode, body: data}, nil
}

// get performs an idempotent read through the retry executor and decodes a
// response with status want into out.
func (c *Client) get(ctx context.Context, op, path string, query url.Values, want int, out any) error {
	return c.reads.Execute(ctx, func(ctx context.Context) error {
		resp, err := c.send(ctx, http.MethodGet, path, query, nil)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if resp.status != want {
			return newAPIError(op, resp.status, resp.body)
		}
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(resp.body, out); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
		return nil
	})
}

// post performs a single write and decodes a response with status want into out.
func (c *Client) post(ctx context.Context, op, path string, payload any, want int, out any) error {
	resp, err := c.send(ctx, http.MethodPost, path, nil, payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if resp.status != want {
		return newAPIError(op, resp.status, resp.body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// CheckConnection verifies the instance answers an authenticated read.
func (c *Client) CheckConnection(ctx context.Context) error {
	if err := c.get(ctx, "check connection", restPrefix+"/entities/properties/"+healthProperty, nil, http.StatusOK, nil); err != nil {
		return fmt.Errorf("%w: %s: %w", wbapi.ErrConnectionFailed, c.baseURL, err)
	}
	return nil
}

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/medcheck-cli/internal/logger"
)

// Ensure Client implements the backend ports.
var (
	_ driven.InteractionBackend = (*Client)(nil)
	_ driven.AuthBackend        = (*Client)(nil)
	_ driven.ResourceClient     = (*Client)(nil)
)

// defaultTimeout bounds requests made without a deadline in ctx.
const defaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// TokenFunc returns the bearer token of the active session, or "" when
// logged out.
type TokenFunc func(ctx context.Context) (string, error)

// Client talks to the interaction-resolution service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *RateLimiter
	token   TokenFunc
	now     func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRateLimit throttles requests to rps per second. Zero disables it.
func WithRateLimit(rps float64) Option {
	return func(c *Client) { c.limiter = NewRateLimiter(rps) }
}

// WithTokenFunc sets where the bearer token comes from.
func WithTokenFunc(fn TokenFunc) Option {
	return func(c *Client) { c.token = fn }
}

// NewClient creates a backend client for baseURL.
// Returns domain.ErrNotConfigured when baseURL is empty.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("backend url %w", domain.ErrNotConfigured)
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends one request and decodes a 2xx JSON body into out.
// When authed is true and a session token is available, the request is
// sent through an oauth2 transport carrying it as a bearer token.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	hc, err := c.clientFor(ctx, authed)
	if err != nil {
		return err
	}

	logger.Debug("%s %s (request %s)", method, path, requestID)
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			c.limiter.RecordRateLimitError(parseRetryAfter(resp.Header.Get("Retry-After"), c.now()))
		}
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// clientFor returns the HTTP client to use, wrapped with the session's
// bearer token when one is active.
func (c *Client) clientFor(ctx context.Context, authed bool) (*http.Client, error) {
	if !authed || c.token == nil {
		return c.http, nil
	}
	token, err := c.token(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading session token: %w", err)
	}
	if token == "" {
		return c.http, nil
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})), nil
}

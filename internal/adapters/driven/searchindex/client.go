package searchindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.CandidateIndex = (*Client)(nil)

// Client is an HTTP client for the search service.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithRateLimit caps outgoing queries per second. Zero disables limiting.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))
		}
	}
}

// NewClient creates a search client for baseURL. apiKey may be empty.
// Returns domain.ErrNotConfigured when baseURL is empty.
func NewClient(baseURL, apiKey string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("search url %w", domain.ErrNotConfigured)
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type searchRequest struct {
	Q     string `json:"q"`
	Limit int    `json:"limit"`
}

type searchHit struct {
	ID   domain.EntityID `json:"id"`
	Name string          `json:"name"`
}

type searchResponse struct {
	Hits []searchHit `json:"hits"`
}

// Search queries the category's index.
func (c *Client) Search(
	ctx context.Context, category domain.Category, query string, limit int,
) ([]domain.Candidate, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	body, err := json.Marshal(searchRequest{Q: query, Limit: limit})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/indexes/%s/search", c.baseURL, category.Collection())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", category.Collection(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("searching %s: unexpected status %d", category.Collection(), resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding %s hits: %w", category.Collection(), err)
	}

	candidates := make([]domain.Candidate, 0, len(parsed.Hits))
	for _, hit := range parsed.Hits {
		candidates = append(candidates, domain.Candidate{ID: hit.ID.String(), Label: hit.Name})
	}
	return candidates, nil
}

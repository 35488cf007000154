package searchindex

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driven"
)

// Ensure Cached implements the interface.
var _ driven.CandidateIndex = (*Cached)(nil)

type cacheKey struct {
	category domain.Category
	query    string
	limit    int
}

// Cached memoises successful searches for a short TTL. Failures are never
// cached so the next keystroke retries the service.
type Cached struct {
	next  driven.CandidateIndex
	cache *expirable.LRU[cacheKey, []domain.Candidate]
}

// NewCached wraps next. A non-positive size or ttl disables caching and
// returns next unchanged.
func NewCached(next driven.CandidateIndex, size int, ttl time.Duration) driven.CandidateIndex {
	if size <= 0 || ttl <= 0 {
		return next
	}
	return &Cached{
		next:  next,
		cache: expirable.NewLRU[cacheKey, []domain.Candidate](size, nil, ttl),
	}
}

// Search returns a cached result or delegates to the wrapped index.
// Queries are keyed case-insensitively.
func (c *Cached) Search(
	ctx context.Context, category domain.Category, query string, limit int,
) ([]domain.Candidate, error) {
	key := cacheKey{category: category, query: strings.ToLower(query), limit: limit}
	if hits, ok := c.cache.Get(key); ok {
		return clone(hits), nil
	}

	hits, err := c.next.Search(ctx, category, query, limit)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, clone(hits))
	return hits, nil
}

// Len returns the number of cached queries.
func (c *Cached) Len() int {
	return c.cache.Len()
}

func clone(hits []domain.Candidate) []domain.Candidate {
	out := make([]domain.Candidate, len(hits))
	copy(out, hits)
	return out
}

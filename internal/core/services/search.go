package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driving"
	"github.com/custodia-labs/medcheck-cli/internal/logger"
)

// Ensure CandidateSearchService implements the interface.
var _ driving.CandidateSearchService = (*CandidateSearchService)(nil)

// defaultSearchTimeout bounds a query when no timeout is configured.
const defaultSearchTimeout = 5 * time.Second

// CandidateSearchService turns partial text into ranked suggestions.
// It never returns an error: failures degrade to an empty list.
type CandidateSearchService struct {
	index    driven.CandidateIndex
	observer driven.CheckObserver
	timeout  time.Duration
}

// NewCandidateSearchService creates a new search service.
// A zero timeout uses the 5s default.
func NewCandidateSearchService(index driven.CandidateIndex, timeout time.Duration) *CandidateSearchService {
	if timeout <= 0 {
		timeout = defaultSearchTimeout
	}
	return &CandidateSearchService{
		index:   index,
		timeout: timeout,
	}
}

// SetObserver sets the observer notified of every index query.
func (s *CandidateSearchService) SetObserver(observer driven.CheckObserver) {
	s.observer = observer
}

// Search returns up to domain.CandidatePageSize candidates.
func (s *CandidateSearchService) Search(
	ctx context.Context, category domain.Category, query string,
) []domain.Candidate {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < domain.MinQueryLength {
		return []domain.Candidate{}
	}
	if !category.IsValid() {
		logger.Warn("Search skipped: invalid category %q", category)
		return []domain.Candidate{}
	}
	if s.index == nil {
		logger.Warn("Search skipped: no search index configured")
		return []domain.Candidate{}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	logger.Debug("Searching %s for %q", category.Collection(), query)
	start := time.Now()
	hits, err := s.index.Search(ctx, category, query, domain.CandidatePageSize)
	took := time.Since(start)

	if err != nil {
		logger.Warn("Candidate search failed for %s %q: %v", category, query, err)
		s.observe(category, 0, err, took)
		return []domain.Candidate{}
	}

	candidates := make([]domain.Candidate, 0, min(len(hits), domain.CandidatePageSize))
	for _, hit := range hits {
		if len(candidates) == domain.CandidatePageSize {
			break
		}
		if strings.TrimSpace(hit.ID) == "" {
			continue
		}
		candidates = append(candidates, hit)
	}

	logger.Debug("Search returned %d candidates in %s", len(candidates), took)
	s.observe(category, len(candidates), nil, took)
	return candidates
}

func (s *CandidateSearchService) observe(category domain.Category, hits int, err error, took time.Duration) {
	if s.observer != nil {
		s.observer.SearchCompleted(category, hits, err, took)
	}
}

package driving

import (
	"context"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

// CandidateSearchService provides search-as-you-type suggestions.
type CandidateSearchService interface {
	// Search returns up to 10 ranked candidates for category and query.
	// Queries shorter than 2 characters, and any failure, yield an empty list.
	Search(ctx context.Context, category domain.Category, query string) []domain.Candidate
}

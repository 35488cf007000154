package driven

import (
	"context"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

// CandidateIndex queries the external typo-tolerant search index.
// Each category maps to a named collection (see domain.Category.Collection).
type CandidateIndex interface {
	// Search returns up to limit ranked candidates whose name matches query.
	Search(ctx context.Context, category domain.Category, query string, limit int) ([]domain.Candidate, error)
}

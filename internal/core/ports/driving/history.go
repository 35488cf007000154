package driving

import (
	"context"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

// HistoryService lists locally recorded check cycles.
type HistoryService interface {
	// Recent returns up to limit entries, most recent first.
	Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)
}

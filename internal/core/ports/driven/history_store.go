package driven

import (
	"context"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

// CheckHistoryStore records completed check cycles.
type CheckHistoryStore interface {
	// Record appends an entry and assigns its ID.
	Record(ctx context.Context, entry domain.HistoryEntry) (domain.HistoryEntry, error)

	// Recent returns up to limit entries, most recent first.
	Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Prune keeps the most recent keep entries and removes the rest.
	Prune(ctx context.Context, keep int) error
}

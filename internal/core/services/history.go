package services

import (
	"context"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driving"
	"github.com/custodia-labs/medcheck-cli/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// Defaults for the history log.
const (
	defaultHistoryLimit = 20
	historyRetention    = 500
)

// HistoryService records completed check cycles and lists them. It is a
// log only; checks never read from it.
type HistoryService struct {
	store driven.CheckHistoryStore
}

// NewHistoryService creates a history service.
func NewHistoryService(store driven.CheckHistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Recent returns up to limit entries, most recent first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.store.Recent(ctx, limit)
}

// Hook returns a completion hook that records every cycle that reached the
// backend. Deficiency bounces are not recorded. Recording failures are
// logged and never affect the cycle.
func (s *HistoryService) Hook() CompletionHook {
	return func(outcome domain.CheckOutcome) {
		if outcome.Deficiency {
			return
		}
		ctx := context.Background()
		if _, err := s.store.Record(ctx, domain.NewHistoryEntry(outcome)); err != nil {
			logger.Warn("Recording check history failed: %v", err)
			return
		}
		if err := s.store.Prune(ctx, historyRetention); err != nil {
			logger.Warn("Pruning check history failed: %v", err)
		}
	}
}

// ObserverHook adapts an observer into a completion hook.
func ObserverHook(observer driven.CheckObserver) CompletionHook {
	return func(outcome domain.CheckOutcome) {
		observer.CheckCompleted(outcome)
	}
}

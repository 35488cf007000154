package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.CheckHistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.CheckHistoryStore.
type HistoryStore struct {
	mu      sync.RWMutex
	entries []domain.HistoryEntry
}

// NewHistoryStore creates an empty history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Record appends an entry with a fresh ID.
func (s *HistoryStore) Record(_ context.Context, entry domain.HistoryEntry) (domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = uuid.New().String()
	s.entries = append(s.entries, entry)
	return entry, nil
}

// Recent returns up to limit entries, most recent first.
func (s *HistoryStore) Recent(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	sorted := s.sortedLocked()
	s.mu.RUnlock()

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// Prune keeps the keep most recent entries.
func (s *HistoryStore) Prune(_ context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if keep < 0 {
		keep = 0
	}
	sorted := s.sortedLocked()
	if len(sorted) <= keep {
		return nil
	}
	kept := sorted[:keep]
	// Stored order is oldest first.
	s.entries = make([]domain.HistoryEntry, 0, len(kept))
	for i := len(kept) - 1; i >= 0; i-- {
		s.entries = append(s.entries, kept[i])
	}
	return nil
}

// sortedLocked returns a copy ordered newest first. Entries with the same
// timestamp keep reverse insertion order.
func (s *HistoryStore) sortedLocked() []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, len(s.entries))
	for i, e := range s.entries {
		out[len(s.entries)-1-i] = e
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CheckedAt.After(out[j].CheckedAt)
	})
	return out
}

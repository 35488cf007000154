package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driven"
)

// historyStore implements driven.CheckHistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.CheckHistoryStore = (*historyStore)(nil)

// Record inserts an entry with a fresh ID.
func (s *historyStore) Record(ctx context.Context, entry domain.HistoryEntry) (domain.HistoryEntry, error) {
	entry.ID = uuid.New().String()
	if entry.CheckedAt.IsZero() {
		entry.CheckedAt = time.Now()
	}

	drugs, err := marshalIDs(entry.Request.DrugIDs)
	if err != nil {
		return entry, err
	}
	foods, err := marshalIDs(entry.Request.FoodIDs)
	if err != nil {
		return entry, err
	}
	comps, err := marshalIDs(entry.Request.CompIDs)
	if err != nil {
		return entry, err
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO check_history (
			id, mode, drug_ids, food_ids, comp_ids, state, total,
			major, moderate, minor, unknown, message, checked_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID, string(entry.Mode), drugs, foods, comps, entry.State.String(), entry.Total,
		entry.Counts.Major, entry.Counts.Moderate, entry.Counts.Minor, entry.Counts.Unknown,
		entry.Message, entry.CheckedAt.UnixNano(),
	)
	if err != nil {
		return entry, fmt.Errorf("recording check: %w", err)
	}
	return entry, nil
}

// Recent returns up to limit entries, most recent first.
func (s *historyStore) Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, mode, drug_ids, food_ids, comp_ids, state, total,
		       major, moderate, minor, unknown, message, checked_at
		FROM check_history
		ORDER BY checked_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	entries := []domain.HistoryEntry{}
	for rows.Next() {
		var (
			e                   domain.HistoryEntry
			mode, state         string
			drugs, foods, comps string
			checkedAt           int64
		)
		if err := rows.Scan(
			&e.ID, &mode, &drugs, &foods, &comps, &state, &e.Total,
			&e.Counts.Major, &e.Counts.Moderate, &e.Counts.Minor, &e.Counts.Unknown,
			&e.Message, &checkedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		e.Mode = domain.CheckerMode(mode)
		e.State = parseCheckState(state)
		e.CheckedAt = time.Unix(0, checkedAt)
		e.Request = domain.InteractionCheckRequest{
			DrugIDs: unmarshalIDs(drugs),
			FoodIDs: unmarshalIDs(foods),
			CompIDs: unmarshalIDs(comps),
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune keeps the keep most recent entries.
func (s *historyStore) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM check_history WHERE id NOT IN (
			SELECT id FROM check_history ORDER BY checked_at DESC, rowid DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning history: %w", err)
	}
	return nil
}

func marshalIDs(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("marshalling ids: %w", err)
	}
	return string(data), nil
}

func unmarshalIDs(data string) []string {
	ids := []string{}
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return []string{}
	}
	return ids
}

func parseCheckState(s string) domain.CheckState {
	for _, st := range []domain.CheckState{
		domain.CheckIdle, domain.CheckPending, domain.CheckSuccess, domain.CheckError,
	} {
		if st.String() == s {
			return st
		}
	}
	return domain.CheckError
}

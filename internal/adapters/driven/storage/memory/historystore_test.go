package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

func TestHistoryStore_RecordAssignsID(t *testing.T) {
	store := NewHistoryStore()

	entry, err := store.Record(context.Background(), domain.HistoryEntry{Mode: domain.ModeDrugDrug})

	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
}

func TestHistoryStore_RecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_, err := store.Record(ctx, domain.HistoryEntry{
			Message:   string(rune('a' + i)),
			CheckedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	entries, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c", entries[0].Message)
	assert.Equal(t, "b", entries[1].Message)
}

func TestHistoryStore_Prune(t *testing.T) {
	ctx := context.Background()
	store := NewHistoryStore()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		_, _ = store.Record(ctx, domain.HistoryEntry{
			Total:     i,
			CheckedAt: base.Add(time.Duration(i) * time.Second),
		})
	}

	require.NoError(t, store.Prune(ctx, 2))

	entries, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 4, entries[0].Total)
	assert.Equal(t, 3, entries[1].Total)

	// A later record still sorts first.
	_, _ = store.Record(ctx, domain.HistoryEntry{Total: 9, CheckedAt: base.Add(time.Hour)})
	entries, _ = store.Recent(ctx, 1)
	assert.Equal(t, 9, entries[0].Total)
}

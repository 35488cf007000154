package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/medcheck-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

func TestHistoryService_HookRecordsBackendCycles(t *testing.T) {
	store := memory.NewHistoryStore()
	service := NewHistoryService(store)
	hook := service.Hook()

	hook(domain.CheckOutcome{
		Mode:  domain.ModeDrugDrug,
		State: domain.CheckSuccess,
		Result: &domain.InteractionCheckResult{
			DrugDrug: []domain.DrugDrugInteraction{{Severity: "MAJOR"}, {Severity: "severe"}},
		},
		CompletedAt: time.Now(),
	})
	hook(domain.CheckOutcome{
		Mode:       domain.ModeDrugFood,
		State:      domain.CheckError,
		Message:    "Add a food item",
		Deficiency: true,
	})

	entries, err := service.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ModeDrugDrug, entries[0].Mode)
	assert.Equal(t, 2, entries[0].Total)
	assert.Equal(t, 1, entries[0].Counts.Major)
	assert.Equal(t, 1, entries[0].Counts.Unknown)
	assert.NotEmpty(t, entries[0].ID)
}

func TestHistoryService_RecentLimit(t *testing.T) {
	store := memory.NewHistoryStore()
	service := NewHistoryService(store)
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		_, _ = store.Record(context.Background(), domain.HistoryEntry{CheckedAt: base.Add(time.Duration(i) * time.Second)})
	}

	entries, err := service.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, defaultHistoryLimit)

	entries, err = service.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

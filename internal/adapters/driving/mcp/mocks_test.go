package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
	"github.com/custodia-labs/medcheck-cli/internal/core/services"
)

// mockSearchService is a mock implementation of driving.CandidateSearchService.
type mockSearchService struct {
	candidates []domain.Candidate
	category   domain.Category
	query      string
}

func (m *mockSearchService) Search(_ context.Context, category domain.Category, query string) []domain.Candidate {
	m.category = category
	m.query = query
	return m.candidates
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	entries []domain.HistoryEntry
	limit   int
	err     error
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	m.limit = limit
	return m.entries, m.err
}

// mockBackend is a mock implementation of driven.InteractionBackend.
type mockBackend struct {
	result   *domain.InteractionCheckResult
	err      error
	requests []domain.InteractionCheckRequest
}

func (m *mockBackend) CheckInteractions(
	_ context.Context, req domain.InteractionCheckRequest,
) (*domain.InteractionCheckResult, error) {
	m.requests = append(m.requests, req)
	return m.result, m.err
}

func newTestServer(backend *mockBackend, history *mockHistoryService) (*Server, *mockSearchService) {
	search := &mockSearchService{}
	ports := &Ports{
		Search: search,
		Panels: services.NewPanelFactory(backend, 5*time.Second),
	}
	if history != nil {
		ports.History = history
	}
	server, err := NewServer(ports)
	if err != nil {
		panic(err)
	}
	return server, search
}

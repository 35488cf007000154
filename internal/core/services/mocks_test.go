package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

// --- Mock implementations ---

// mockIndex implements driven.CandidateIndex for testing.
type mockIndex struct {
	mu       sync.Mutex
	hits     []domain.Candidate
	err      error
	calls    int
	lastCat  domain.Category
	lastQ    string
	lastSize int
}

func (m *mockIndex) Search(_ context.Context, category domain.Category, query string, limit int) ([]domain.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastCat = category
	m.lastQ = query
	m.lastSize = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.hits, nil
}

// mockBackend implements driven.InteractionBackend. When release is set,
// calls block until it is closed so tests can observe the pending state.
type mockBackend struct {
	mu       sync.Mutex
	result   *domain.InteractionCheckResult
	err      error
	release  chan struct{}
	requests []domain.InteractionCheckRequest
}

func (m *mockBackend) CheckInteractions(
	ctx context.Context, req domain.InteractionCheckRequest,
) (*domain.InteractionCheckResult, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	release := m.release
	m.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return m.result, m.err
}

func (m *mockBackend) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// mockMessageError carries a server-supplied message.
type mockMessageError struct {
	msg string
}

func (e *mockMessageError) Error() string         { return "backend returned an error" }
func (e *mockMessageError) ServerMessage() string { return e.msg }

// mockAuth implements driven.AuthBackend.
type mockAuth struct {
	session *domain.Session
	err     error
	creds   domain.Credentials
}

func (m *mockAuth) Login(_ context.Context, creds domain.Credentials) (*domain.Session, error) {
	m.creds = creds
	if m.err != nil {
		return nil, m.err
	}
	cp := *m.session
	return &cp, nil
}

// mockResources implements driven.ResourceClient.
type mockResources struct {
	records map[string]domain.Record
	created []domain.Record
	deleted []string
}

func (m *mockResources) List(_ context.Context, _ domain.Resource) ([]domain.Record, error) {
	out := make([]domain.Record, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockResources) Get(_ context.Context, _ domain.Resource, id string) (domain.Record, error) {
	rec, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

func (m *mockResources) Create(_ context.Context, _ domain.Resource, rec domain.Record) (domain.Record, error) {
	m.created = append(m.created, rec)
	return rec, nil
}

func (m *mockResources) Update(_ context.Context, _ domain.Resource, id string, rec domain.Record) (domain.Record, error) {
	rec["id"] = id
	return rec, nil
}

func (m *mockResources) Delete(_ context.Context, _ domain.Resource, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

// mockObserver implements driven.CheckObserver.
type mockObserver struct {
	mu       sync.Mutex
	searches int
	errors   int
	checks   []domain.CheckOutcome
}

func (m *mockObserver) SearchCompleted(_ domain.Category, _ int, err error, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches++
	if err != nil {
		m.errors++
	}
}

func (m *mockObserver) CheckCompleted(outcome domain.CheckOutcome) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checks = append(m.checks, outcome)
}

// --- Fixtures ---

func drug(id, name string) domain.SelectedItem {
	return domain.SelectedItem{ID: id, Name: name, Category: domain.CategoryDrug}
}

func food(id, name string) domain.SelectedItem {
	return domain.SelectedItem{ID: id, Name: name, Category: domain.CategoryFood}
}

func comp(id, name string) domain.SelectedItem {
	return domain.SelectedItem{ID: id, Name: name, Category: domain.CategoryComplementary}
}

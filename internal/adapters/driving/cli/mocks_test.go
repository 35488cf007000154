package cli

import (
	"bytes"
	"context"
	"time"

	"github.com/spf13/pflag"

	"github.com/custodia-labs/medcheck-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
	"github.com/custodia-labs/medcheck-cli/internal/core/services"
)

// mockSearchService implements driving.CandidateSearchService.
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

// mockBackend implements driven.InteractionBackend.
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
	s := *m.session
	return &s, nil
}

// mockResourceClient implements driven.ResourceClient over a map.
type mockResourceClient struct {
	records map[domain.Resource][]domain.Record
	created []domain.Record
	updated map[string]domain.Record
	deleted []string
}

func (m *mockResourceClient) List(_ context.Context, r domain.Resource) ([]domain.Record, error) {
	return m.records[r], nil
}

func (m *mockResourceClient) Get(_ context.Context, r domain.Resource, id string) (domain.Record, error) {
	for _, rec := range m.records[r] {
		if rec.ID() == id {
			return rec, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockResourceClient) Create(_ context.Context, _ domain.Resource, rec domain.Record) (domain.Record, error) {
	m.created = append(m.created, rec)
	out := domain.Record{"id": float64(len(m.created) + 100)}
	for k, v := range rec {
		out[k] = v
	}
	return out, nil
}

func (m *mockResourceClient) Update(
	_ context.Context, _ domain.Resource, id string, rec domain.Record,
) (domain.Record, error) {
	if m.updated == nil {
		m.updated = make(map[string]domain.Record)
	}
	m.updated[id] = rec
	return rec, nil
}

func (m *mockResourceClient) Delete(_ context.Context, _ domain.Resource, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

// testFixture holds the collaborators behind the injected services.
type testFixture struct {
	search    *mockSearchService
	backend   *mockBackend
	auth      *mockAuth
	resources *mockResourceClient
	sessions  *memory.SessionStore
	history   *memory.HistoryStore
	config    *memory.ConfigStore
}

// setupTestServices injects real services over mocks and in-memory stores.
// The returned cleanup resets services and flag state.
func setupTestServices() (*testFixture, func()) {
	f := &testFixture{
		search:    &mockSearchService{},
		backend:   &mockBackend{result: &domain.InteractionCheckResult{}},
		auth:      &mockAuth{session: &domain.Session{Token: "tok", IsAdmin: true}},
		resources: &mockResourceClient{records: map[domain.Resource][]domain.Record{}},
		sessions:  memory.NewSessionStore(),
		history:   memory.NewHistoryStore(),
		config:    memory.NewConfigStore(),
	}

	session := services.NewSessionService(f.auth, f.sessions)
	history := services.NewHistoryService(f.history)
	panels := services.NewPanelFactory(f.backend, 5*time.Second)
	panels.OnComplete(history.Hook())

	SetServices(&Services{
		Search:   f.search,
		Panels:   panels,
		Session:  session,
		Admin:    services.NewAdminService(f.resources, session),
		History:  history,
		Settings: services.NewSettingsService(f.config),
	})

	return f, func() {
		SetServices(nil)
		resetFlags()
	}
}

// resetFlags clears flag-bound package state between executions.
func resetFlags() {
	searchJSON = false
	checkMode = ""
	checkJSON = false
	loginUsername = ""
	historyLimit = 20
	for _, lookup := range []struct {
		flags *pflag.FlagSet
		name  string
	}{
		{checkCmd.Flags(), "drug"},
		{checkCmd.Flags(), "food"},
		{checkCmd.Flags(), "comp"},
		{adminCreateCmd.Flags(), "set"},
		{adminUpdateCmd.Flags(), "set"},
	} {
		if sv, ok := lookup.flags.Lookup(lookup.name).Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		}
	}
	checkDrugs, checkFoods, checkComps, adminSet = nil, nil, nil, nil
}

// execute runs the root command with args and returns its output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func stringReader(s string) *bytes.Reader {
	return bytes.NewReader([]byte(s))
}

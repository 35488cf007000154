package checker

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/medcheck-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
	"github.com/custodia-labs/medcheck-cli/internal/core/services"
)

// mockSearchService implements driving.CandidateSearchService for testing.
type mockSearchService struct {
	mu      sync.Mutex
	queries []string
	results map[domain.Category][]domain.Candidate
}

func (m *mockSearchService) Search(_ context.Context, category domain.Category, query string) []domain.Candidate {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, string(category)+":"+query)
	return m.results[category]
}

// mockBackend implements driven.InteractionBackend for testing.
// When release is set, calls block until it is closed.
type mockBackend struct {
	mu      sync.Mutex
	calls   int
	result  *domain.InteractionCheckResult
	err     error
	release chan struct{}
}

func (m *mockBackend) CheckInteractions(
	_ context.Context, _ domain.InteractionCheckRequest,
) (*domain.InteractionCheckResult, error) {
	m.mu.Lock()
	m.calls++
	release := m.release
	m.mu.Unlock()
	if release != nil {
		<-release
	}
	return m.result, m.err
}

func newTestView(t *testing.T, backend *mockBackend) (*View, *mockSearchService) {
	t.Helper()
	search := &mockSearchService{results: map[domain.Category][]domain.Candidate{
		domain.CategoryDrug: {{ID: "1", Label: "Warfarin"}, {ID: "2", Label: "Aspirin"}},
		domain.CategoryFood: {{ID: "4", Label: "Grapefruit"}},
	}}
	panel, err := services.NewPanelFactory(backend, 5*time.Second).NewPanel(domain.ModeDrugDrug)
	require.NoError(t, err)

	v, err := NewView(nil, nil, search, panel, services.NewDebouncer(0))
	require.NoError(t, err)
	v.SetDimensions(120, 40)
	return v, search
}

// runCmd executes cmd, expanding batches, and returns the non-nil messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func typeQuery(v *View, query string) []tea.Msg {
	v.input.SetValue(query)
	return runCmd(v.queryChanged())
}

func keyPress(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestNewView_RequiresPanel(t *testing.T) {
	_, err := NewView(nil, nil, nil, nil, nil)
	assert.ErrorIs(t, err, ErrNoPanel)
}

func TestView_DebouncedSearch(t *testing.T) {
	v, search := newTestView(t, &mockBackend{})

	msgs := typeQuery(v, "wa")
	require.Len(t, msgs, 1)
	v.Update(msgs[0])

	assert.Equal(t, []string{"drug:wa"}, search.queries)
	assert.Len(t, v.Suggestions(), 2)
}

func TestView_ShortQueryClearsWithoutSearching(t *testing.T) {
	v, search := newTestView(t, &mockBackend{})
	for _, msg := range typeQuery(v, "wa") {
		v.Update(msg)
	}

	msgs := typeQuery(v, "w")

	assert.Empty(t, msgs)
	assert.Empty(t, v.Suggestions())
	assert.Len(t, search.queries, 1)
}

func TestView_StaleSuggestionsDiscarded(t *testing.T) {
	v, _ := newTestView(t, &mockBackend{})

	v.input.SetValue("war")
	stale := v.queryChanged()
	v.input.SetValue("warf")
	fresh := v.queryChanged()

	// The superseded wait returns nothing.
	assert.Empty(t, runCmd(stale))

	// A response tagged with an old sequence is ignored even if delivered.
	v.Update(messages.SuggestionsLoaded{Seq: 0, Category: domain.CategoryDrug, Candidates: []domain.Candidate{{ID: "9"}}})
	assert.Empty(t, v.Suggestions())

	for _, msg := range runCmd(fresh) {
		v.Update(msg)
	}
	assert.Len(t, v.Suggestions(), 2)
}

func TestView_AddHighlighted(t *testing.T) {
	v, _ := newTestView(t, &mockBackend{})
	for _, msg := range typeQuery(v, "wa") {
		v.Update(msg)
	}

	v.Update(keyPress(tea.KeyDown))
	v.Update(keyPress(tea.KeyEnter))

	items := v.panel.Items()
	require.Len(t, items, 1)
	assert.Equal(t, domain.SelectedItem{ID: "2", Name: "Aspirin", Category: domain.CategoryDrug}, items[0])
	assert.Equal(t, "", v.Query())
	assert.Empty(t, v.Suggestions())
}

func TestView_AddDuplicateIsIgnored(t *testing.T) {
	v, _ := newTestView(t, &mockBackend{})
	for i := 0; i < 2; i++ {
		for _, msg := range typeQuery(v, "wa") {
			v.Update(msg)
		}
		v.Update(keyPress(tea.KeyEnter))
	}

	assert.Len(t, v.panel.Items(), 1)
	_, message := v.Status()
	assert.Contains(t, message, "already selected")
}

func TestView_RemoveLastAndClear(t *testing.T) {
	v, _ := newTestView(t, &mockBackend{})
	_, _ = v.panel.Add(domain.SelectedItem{ID: "1", Name: "Warfarin", Category: domain.CategoryDrug})
	_, _ = v.panel.Add(domain.SelectedItem{ID: "2", Name: "Aspirin", Category: domain.CategoryDrug})

	v.Update(keyPress(tea.KeyCtrlD))
	require.Len(t, v.panel.Items(), 1)
	assert.Equal(t, "1", v.panel.Items()[0].ID)

	v.Update(keyPress(tea.KeyCtrlX))
	assert.Empty(t, v.panel.Items())

	// Removing from an empty selection is a no-op.
	v.Update(keyPress(tea.KeyCtrlD))
	assert.Empty(t, v.panel.Items())
}

func TestView_ModeSwitchClearsSelection(t *testing.T) {
	v, _ := newTestView(t, &mockBackend{})
	_, _ = v.panel.Add(domain.SelectedItem{ID: "1", Category: domain.CategoryDrug})

	v.Update(keyPress(tea.KeyTab))

	assert.Equal(t, domain.ModeDrugFood, v.panel.Mode())
	assert.Empty(t, v.panel.Items())
	assert.Equal(t, domain.CategoryDrug, v.Category())

	v.Update(keyPress(tea.KeyShiftTab))
	v.Update(keyPress(tea.KeyShiftTab))
	assert.Equal(t, domain.ModeDrugComp, v.panel.Mode())
}

func TestView_CycleCategoryRerunsQuery(t *testing.T) {
	v, search := newTestView(t, &mockBackend{})
	v.Update(keyPress(tea.KeyTab)) // drug-food
	for _, msg := range typeQuery(v, "gra") {
		v.Update(msg)
	}

	_, cmd := v.Update(keyPress(tea.KeyCtrlT))
	for _, msg := range runCmd(cmd) {
		v.Update(msg)
	}

	assert.Equal(t, domain.CategoryFood, v.Category())
	assert.Equal(t, []string{"drug:gra", "food:gra"}, search.queries)
	require.Len(t, v.Suggestions(), 1)
	assert.Equal(t, "Grapefruit", v.Suggestions()[0].Label)
}

func TestView_CheckDisabledUntilCoarseGate(t *testing.T) {
	backend := &mockBackend{}
	v, _ := newTestView(t, backend)
	_, _ = v.panel.Add(domain.SelectedItem{ID: "1", Category: domain.CategoryDrug})

	_, cmd := v.Update(keyPress(tea.KeyCtrlR))

	assert.Nil(t, cmd)
	assert.Zero(t, backend.calls)
	_, message := v.Status()
	assert.Contains(t, message, "at least 2")
}

func TestView_CheckSuccess(t *testing.T) {
	backend := &mockBackend{result: &domain.InteractionCheckResult{
		DrugDrug: []domain.DrugDrugInteraction{{
			ID: "5", Medication1ID: "1", Medication2ID: "2",
			Medication1Name: "Warfarin", Medication2Name: "Aspirin",
			Severity: "major", Description: "Bleeding risk", Recommendation: "Avoid",
		}},
	}}
	v, _ := newTestView(t, backend)
	_, _ = v.panel.Add(domain.SelectedItem{ID: "1", Name: "Warfarin", Category: domain.CategoryDrug})
	_, _ = v.panel.Add(domain.SelectedItem{ID: "2", Name: "Aspirin", Category: domain.CategoryDrug})

	_, cmd := v.Update(keyPress(tea.KeyCtrlR))
	require.NotNil(t, cmd)
	state, _ := v.Status()
	assert.Equal(t, domain.CheckPending, state)

	for _, msg := range runCmd(cmd) {
		v.Update(msg)
	}

	state, message := v.Status()
	assert.Equal(t, domain.CheckSuccess, state)
	assert.Equal(t, "1 interaction found", message)
	assert.Equal(t, 1, backend.calls)

	view := v.View()
	assert.Contains(t, view, "Warfarin ↔ Aspirin")
	assert.Contains(t, view, "Recommendation: Avoid")
}

func TestView_CheckNoInteractions(t *testing.T) {
	v, _ := newTestView(t, &mockBackend{result: &domain.InteractionCheckResult{}})
	_, _ = v.panel.Add(domain.SelectedItem{ID: "1", Category: domain.CategoryDrug})
	_, _ = v.panel.Add(domain.SelectedItem{ID: "2", Category: domain.CategoryDrug})

	_, cmd := v.Update(keyPress(tea.KeyCtrlR))
	for _, msg := range runCmd(cmd) {
		v.Update(msg)
	}

	_, message := v.Status()
	assert.Equal(t, "No known interactions found", message)
	assert.Contains(t, v.View(), "No known interactions found")
}

func TestView_CheckDeficiencyShowsMessage(t *testing.T) {
	backend := &mockBackend{}
	v, _ := newTestView(t, backend)
	v.Update(keyPress(tea.KeyTab)) // drug-food needs a food item
	_, _ = v.panel.Add(domain.SelectedItem{ID: "1", Category: domain.CategoryDrug})
	_, _ = v.panel.Add(domain.SelectedItem{ID: "2", Category: domain.CategoryDrug})

	_, cmd := v.Update(keyPress(tea.KeyCtrlR))
	for _, msg := range runCmd(cmd) {
		v.Update(msg)
	}

	state, message := v.Status()
	assert.Equal(t, domain.CheckError, state)
	assert.Equal(t, "Add a food item to check drug-food interactions", message)
	assert.Zero(t, backend.calls)
}

func TestView_SelectionChangeHidesResult(t *testing.T) {
	v, _ := newTestView(t, &mockBackend{result: &domain.InteractionCheckResult{}})
	_, _ = v.panel.Add(domain.SelectedItem{ID: "1", Category: domain.CategoryDrug})
	_, _ = v.panel.Add(domain.SelectedItem{ID: "2", Category: domain.CategoryDrug})
	_, cmd := v.Update(keyPress(tea.KeyCtrlR))
	for _, msg := range runCmd(cmd) {
		v.Update(msg)
	}

	v.Update(keyPress(tea.KeyCtrlD))

	assert.NotContains(t, v.View(), "No known interactions found")
	state, _ := v.Status()
	assert.Equal(t, domain.CheckIdle, state)
}

func TestView_SelectionChangeWhilePendingDropsResult(t *testing.T) {
	backend := &mockBackend{
		result: &domain.InteractionCheckResult{DrugDrug: []domain.DrugDrugInteraction{{
			ID: "5", Medication1Name: "Warfarin", Medication2Name: "Aspirin", Severity: "major",
		}}},
		release: make(chan struct{}),
	}
	v, _ := newTestView(t, backend)
	_, _ = v.panel.Add(domain.SelectedItem{ID: "1", Name: "Warfarin", Category: domain.CategoryDrug})
	_, _ = v.panel.Add(domain.SelectedItem{ID: "2", Name: "Aspirin", Category: domain.CategoryDrug})

	_, cmd := v.Update(keyPress(tea.KeyCtrlR))
	require.NotNil(t, cmd)
	_, _ = v.panel.Add(domain.SelectedItem{ID: "3", Name: "Ibuprofen", Category: domain.CategoryDrug})
	close(backend.release)

	for _, msg := range runCmd(cmd) {
		v.Update(msg)
	}

	state, message := v.Status()
	assert.Equal(t, domain.CheckIdle, state)
	assert.Contains(t, message, "Selection changed")
	assert.NotContains(t, v.View(), "Warfarin ↔ Aspirin")
}

func TestView_OutdatedCheckFinishedIgnored(t *testing.T) {
	backend := &mockBackend{result: &domain.InteractionCheckResult{}, release: make(chan struct{})}
	v, _ := newTestView(t, backend)
	_, _ = v.panel.Add(domain.SelectedItem{ID: "1", Category: domain.CategoryDrug})
	_, _ = v.panel.Add(domain.SelectedItem{ID: "2", Category: domain.CategoryDrug})

	_, cmd := v.Update(keyPress(tea.KeyCtrlR))
	require.NotNil(t, cmd)

	v.Update(messages.CheckFinished{
		Seq:     v.checkSeq - 1,
		Outcome: domain.CheckOutcome{State: domain.CheckError, Message: "old failure"},
	})

	state, message := v.Status()
	assert.Equal(t, domain.CheckPending, state)
	assert.NotEqual(t, "old failure", message)
	close(backend.release)
}

func TestView_ViewBeforeReady(t *testing.T) {
	panel, err := services.NewPanelFactory(&mockBackend{}, 0).NewPanel(domain.ModeDrugDrug)
	require.NoError(t, err)
	v, err := NewView(nil, nil, nil, panel, nil)
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", v.View())
	assert.False(t, v.Ready())
}

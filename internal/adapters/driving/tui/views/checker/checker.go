// Package checker provides the interaction checker view for the TUI.
package checker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/medcheck-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/medcheck-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/medcheck-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/medcheck-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/medcheck-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/medcheck-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driving"
)

// Debouncer issues sequence numbers for input changes and delays queries
// until input is idle. See services.Debouncer.
type Debouncer interface {
	Next() uint64
	Wait(ctx context.Context, seq uint64) bool
	IsCurrent(seq uint64) bool
	Stop()
}

// View is the checker screen: mode tabs, a debounced search input with
// suggestions, the selection, and the result of the last check.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.SuggestionList
	statusbar *status.Bar

	search    driving.CandidateSearchService
	panel     driving.CheckerPanel
	debouncer Debouncer
	ctx       context.Context

	modes     []domain.CheckerMode
	lastQuery string
	checkSeq  uint64
	width     int
	height    int
	ready     bool
}

// NewView creates a checker view over panel.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	search driving.CandidateSearchService,
	panel driving.CheckerPanel,
	debouncer Debouncer,
) (*View, error) {
	if panel == nil {
		return nil, ErrNoPanel
	}
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:    s,
		keymap:    km,
		input:     input.NewSearchInput(s),
		list:      list.NewSuggestionList(s),
		statusbar: status.NewBar(s, km),
		search:    search,
		panel:     panel,
		debouncer: debouncer,
		ctx:       context.Background(),
		modes:     domain.CheckModes(),
		width:     80,
		height:    24,
	}
	v.resetCategory()
	return v, nil
}

// WithContext sets the context for searches and checks.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the checker view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SuggestionsLoaded:
		v.handleSuggestions(msg)
		return v, nil

	case messages.CheckFinished:
		v.handleCheckFinished(msg)
		return v, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.statusbar, cmd = v.statusbar.Update(msg)
		return v, cmd

	case messages.ErrorOccurred:
		v.statusbar.SetState(domain.CheckError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Quit):
		v.stopSearch()
		return v, tea.Quit
	case key.Matches(msg, v.keymap.NextMode):
		return v, v.switchMode(1)
	case key.Matches(msg, v.keymap.PrevMode):
		return v, v.switchMode(-1)
	case key.Matches(msg, v.keymap.NextCategory):
		return v, v.cycleCategory()
	case key.Matches(msg, v.keymap.Up):
		v.list.MoveUp()
		return v, nil
	case key.Matches(msg, v.keymap.Down):
		v.list.MoveDown()
		return v, nil
	case key.Matches(msg, v.keymap.Add):
		v.addHighlighted()
		return v, nil
	case key.Matches(msg, v.keymap.RemoveLast):
		v.removeLast()
		return v, nil
	case key.Matches(msg, v.keymap.ClearAll):
		v.panel.Clear()
		v.selectionChanged()
		return v, nil
	case key.Matches(msg, v.keymap.Check):
		return v, v.startCheck()
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, tea.Batch(cmd, v.queryChanged())
}

// queryChanged schedules a debounced search when the input text changed.
// Queries below the minimum length clear the suggestions without a request.
func (v *View) queryChanged() tea.Cmd {
	query := strings.TrimSpace(v.input.Value())
	if query == v.lastQuery {
		return nil
	}
	v.lastQuery = query

	if utf8.RuneCountInString(query) < domain.MinQueryLength {
		v.stopSearch()
		v.list.Clear()
		return nil
	}
	return v.scheduleSearch(query)
}

func (v *View) scheduleSearch(query string) tea.Cmd {
	if v.search == nil || v.debouncer == nil {
		return nil
	}
	seq := v.debouncer.Next()
	category := v.input.Category()
	ctx := v.ctx
	search := v.search
	debouncer := v.debouncer

	return func() tea.Msg {
		if !debouncer.Wait(ctx, seq) {
			return nil
		}
		candidates := search.Search(ctx, category, query)
		return messages.SuggestionsLoaded{Seq: seq, Category: category, Query: query, Candidates: candidates}
	}
}

// handleSuggestions applies a response only if it belongs to the latest
// input; anything older is discarded.
func (v *View) handleSuggestions(msg messages.SuggestionsLoaded) {
	if v.debouncer == nil || !v.debouncer.IsCurrent(msg.Seq) {
		return
	}
	if msg.Category != v.input.Category() {
		return
	}
	v.list.SetCandidates(msg.Category, msg.Candidates)
}

func (v *View) stopSearch() {
	if v.debouncer != nil {
		v.debouncer.Stop()
	}
}

func (v *View) addHighlighted() {
	item, ok := v.list.SelectedItem()
	if !ok {
		return
	}
	added, err := v.panel.Add(item)
	if err != nil {
		v.statusbar.SetMessage(err.Error())
		return
	}

	v.stopSearch()
	v.input.Reset()
	v.lastQuery = ""
	v.list.Clear()
	v.selectionChanged()
	if !added {
		v.statusbar.SetMessage(item.Label() + " is already selected")
	}
}

func (v *View) removeLast() {
	n := len(v.panel.Items())
	if n == 0 {
		return
	}
	if err := v.panel.Remove(n - 1); err != nil {
		v.statusbar.SetMessage(err.Error())
		return
	}
	v.selectionChanged()
}

// selectionChanged drops the displayed result; the panel has already
// invalidated it.
func (v *View) selectionChanged() {
	if v.panel.State() != domain.CheckPending {
		v.statusbar.Clear()
	}
	v.statusbar.SetSelectionCount(len(v.panel.Items()))
}

func (v *View) switchMode(step int) tea.Cmd {
	current := 0
	for i, m := range v.modes {
		if m == v.panel.Mode() {
			current = i
		}
	}
	next := v.modes[(current+step+len(v.modes))%len(v.modes)]
	if err := v.panel.SetMode(next); err != nil {
		v.statusbar.SetMessage(err.Error())
		return nil
	}

	v.stopSearch()
	v.input.Reset()
	v.lastQuery = ""
	v.list.Clear()
	v.resetCategory()
	v.selectionChanged()
	return nil
}

func (v *View) resetCategory() {
	categories := v.panel.SearchCategories()
	if len(categories) > 0 {
		v.input.SetCategory(categories[0])
	}
}

// cycleCategory moves to the next searchable category and re-runs the
// current query against it.
func (v *View) cycleCategory() tea.Cmd {
	categories := v.panel.SearchCategories()
	if len(categories) < 2 {
		return nil
	}
	current := 0
	for i, c := range categories {
		if c == v.input.Category() {
			current = i
		}
	}
	v.input.SetCategory(categories[(current+1)%len(categories)])
	v.list.Clear()

	if utf8.RuneCountInString(v.lastQuery) < domain.MinQueryLength {
		return nil
	}
	return v.scheduleSearch(v.lastQuery)
}

// startCheck triggers a check cycle. Triggers while pending are ignored and
// the action is disabled until the coarse gate passes.
func (v *View) startCheck() tea.Cmd {
	if v.panel.State() == domain.CheckPending {
		return nil
	}
	if !v.panel.CanCheck() {
		v.statusbar.SetMessage("Select at least 2 items to check")
		return nil
	}

	cycle, err := v.panel.Check(v.ctx)
	if errors.Is(err, domain.ErrCheckInFlight) {
		return nil
	}
	if err != nil {
		v.statusbar.SetState(domain.CheckError)
		v.statusbar.SetMessage(err.Error())
		return nil
	}

	v.checkSeq++
	seq := v.checkSeq
	v.statusbar.SetMessage("")
	spin := v.statusbar.SetState(domain.CheckPending)
	wait := func() tea.Msg {
		<-cycle.Done()
		outcome, _ := cycle.Outcome()
		return messages.CheckFinished{Seq: seq, Outcome: outcome}
	}
	return tea.Batch(spin, wait)
}

func (v *View) handleCheckFinished(msg messages.CheckFinished) {
	if msg.Seq != v.checkSeq {
		return
	}
	if _, ok := v.panel.Last(); !ok {
		// The selection changed while the check was pending.
		v.statusbar.SetState(domain.CheckIdle)
		v.statusbar.SetMessage("Selection changed; check again for current results")
		return
	}
	v.statusbar.SetState(msg.Outcome.State)
	if msg.Failed() {
		v.statusbar.SetMessage(msg.Outcome.Message)
		return
	}
	if msg.Outcome.NoInteractions() {
		v.statusbar.SetMessage("No known interactions found")
		return
	}
	total := msg.Outcome.Result.Total()
	noun := "interactions"
	if total == 1 {
		noun = "interaction"
	}
	v.statusbar.SetMessage(fmt.Sprintf("%d %s found", total, noun))
}

// View renders the checker view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)
	sections = append(sections,
		v.styles.Title.Render("medcheck")+"  "+v.renderTabs(),
		v.styles.Muted.Render(v.panel.Mode().Description()),
		"",
		v.input.View(),
	)

	if suggestions := v.list.View(); suggestions != "" {
		sections = append(sections, suggestions)
	}

	sections = append(sections, "", v.renderSelection())

	if outcome, ok := v.panel.Last(); ok {
		sections = append(sections, "", renderOutcome(v.styles, outcome, v.width))
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderTabs() string {
	tabs := make([]string, len(v.modes))
	for i, m := range v.modes {
		if m == v.panel.Mode() {
			tabs[i] = v.styles.ActiveTab.Render(m.String())
		} else {
			tabs[i] = v.styles.Tab.Render(m.String())
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (v *View) renderSelection() string {
	items := v.panel.Items()
	if len(items) == 0 {
		return v.styles.Muted.Render("Nothing selected yet")
	}

	lines := make([]string, 0, len(items)+1)
	lines = append(lines, v.styles.Subtitle.Render(fmt.Sprintf("Selected (%d)", len(items))))
	for i, item := range items {
		lines = append(lines, fmt.Sprintf("  %d. %s %s",
			i+1, item.Label(), v.styles.Muted.Render("["+item.Category.Noun()+"]")))
	}
	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, domain.CandidatePageSize)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current search text.
func (v *View) Query() string {
	return v.input.Value()
}

// Category returns the searched category.
func (v *View) Category() domain.Category {
	return v.input.Category()
}

// Suggestions returns the candidates shown.
func (v *View) Suggestions() []domain.Candidate {
	return v.list.Candidates()
}

// Status returns the status bar state and message.
func (v *View) Status() (domain.CheckState, string) {
	return v.statusbar.State(), v.statusbar.Message()
}

// SetStatusMessage shows message in the status bar.
func (v *View) SetStatusMessage(message string) {
	v.statusbar.SetMessage(message)
}

// SetDebouncer replaces the debouncer, stopping the previous one.
func (v *View) SetDebouncer(d Debouncer) {
	v.stopSearch()
	v.debouncer = d
}

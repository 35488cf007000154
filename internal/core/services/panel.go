package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driving"
)

// Ensure Panel and PanelFactory implement the interfaces.
var (
	_ driving.CheckerPanel  = (*Panel)(nil)
	_ driving.PanelProvider = (*PanelFactory)(nil)
)

// Panel is the controller behind one checker screen. It owns the active
// mode, one Selection and one Checker; nothing about a panel is global.
type Panel struct {
	mu        sync.Mutex
	mode      domain.CheckerMode
	selection *Selection
	checker   *Checker
}

// NewPanel creates a panel in mode with an empty selection.
func NewPanel(checker *Checker, mode domain.CheckerMode) (*Panel, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown checker mode %q", domain.ErrInvalidInput, mode)
	}
	return &Panel{
		mode:      mode,
		selection: NewSelection(),
		checker:   checker,
	}, nil
}

// Mode returns the active checker mode.
func (p *Panel) Mode() domain.CheckerMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

// SetMode switches mode. Selecting a different mode clears the selection
// so items chosen for one pairing never carry over to another.
func (p *Panel) SetMode(mode domain.CheckerMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: unknown checker mode %q", domain.ErrInvalidInput, mode)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if mode == p.mode {
		return nil
	}
	p.mode = mode
	p.selection.Clear()
	p.checker.Reset()
	return nil
}

// SearchCategories returns the categories searchable in the active mode.
func (p *Panel) SearchCategories() []domain.Category {
	return p.Mode().SearchCategories()
}

// Items returns a copy of the selection.
func (p *Panel) Items() []domain.SelectedItem {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selection.Items()
}

// Add appends an item; duplicates are ignored.
func (p *Panel) Add(item domain.SelectedItem) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	added, err := p.selection.Add(item)
	if added {
		p.checker.Reset()
	}
	return added, err
}

// Remove deletes the item at index.
func (p *Panel) Remove(index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.selection.Remove(index); err != nil {
		return err
	}
	p.checker.Reset()
	return nil
}

// Clear empties the selection. Used for "Clear All" and on logout.
func (p *Panel) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selection.Clear()
	p.checker.Reset()
}

// CanCheck is the coarse gate for the check action.
func (p *Panel) CanCheck() bool {
	return CanTrigger(p.Items())
}

// Eligibility validates the selection against the active mode.
func (p *Panel) Eligibility() domain.Eligibility {
	p.mu.Lock()
	defer p.mu.Unlock()
	return CheckEligibility(p.selection.Items(), p.mode)
}

// Check starts a cycle over a snapshot of the selection.
func (p *Panel) Check(ctx context.Context) (driving.CheckCycle, error) {
	p.mu.Lock()
	mode := p.mode
	items := p.selection.Items()
	p.mu.Unlock()

	cycle, err := p.checker.Start(ctx, mode, items)
	if err != nil {
		return nil, err
	}
	return cycle, nil
}

// State returns the check cycle state.
func (p *Panel) State() domain.CheckState {
	return p.checker.State()
}

// Last returns the latest outcome unless the selection changed since.
func (p *Panel) Last() (domain.CheckOutcome, bool) {
	return p.checker.Last()
}

// PanelFactory builds panels that share a backend and completion hooks.
type PanelFactory struct {
	backend driven.InteractionBackend
	timeout time.Duration
	hooks   []CompletionHook
}

// NewPanelFactory creates a factory for panels checking against backend.
func NewPanelFactory(backend driven.InteractionBackend, timeout time.Duration) *PanelFactory {
	return &PanelFactory{backend: backend, timeout: timeout}
}

// OnComplete registers a hook installed on every panel created afterwards.
func (f *PanelFactory) OnComplete(hook CompletionHook) {
	f.hooks = append(f.hooks, hook)
}

// NewPanel creates a panel with its own selection and checker.
func (f *PanelFactory) NewPanel(mode domain.CheckerMode) (driving.CheckerPanel, error) {
	checker := NewChecker(f.backend, f.timeout)
	for _, hook := range f.hooks {
		checker.OnComplete(hook)
	}
	panel, err := NewPanel(checker, mode)
	if err != nil {
		return nil, err
	}
	return panel, nil
}

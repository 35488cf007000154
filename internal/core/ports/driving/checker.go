package driving

import (
	"context"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

// CheckCycle is the one-shot completion event of a single check.
type CheckCycle interface {
	// Done is closed exactly once, when the cycle completes.
	Done() <-chan struct{}

	// Wait blocks until the cycle completes or ctx is done.
	Wait(ctx context.Context) (domain.CheckOutcome, error)

	// Outcome returns the outcome and true once the cycle has completed.
	Outcome() (domain.CheckOutcome, bool)
}

// CheckerPanel is the controller behind one checker screen. It owns the
// active mode, the selection and the check cycle state.
type CheckerPanel interface {
	// Mode returns the active checker mode.
	Mode() domain.CheckerMode

	// SetMode switches mode. Switching to a different mode clears the selection.
	SetMode(mode domain.CheckerMode) error

	// SearchCategories returns the categories searchable in the active mode.
	SearchCategories() []domain.Category

	// Items returns a copy of the selection in insertion order.
	Items() []domain.SelectedItem

	// Add appends an item unless one with the same id and category exists.
	// Returns false for a silently ignored duplicate.
	Add(item domain.SelectedItem) (bool, error)

	// Remove deletes the item at index. Out of range returns domain.ErrInvalidIndex.
	Remove(index int) error

	// Clear empties the selection.
	Clear()

	// CanCheck is the coarse gate: at least two items selected.
	CanCheck() bool

	// Eligibility validates the selection against the active mode.
	Eligibility() domain.Eligibility

	// Check starts a check cycle. Returns domain.ErrCheckInFlight while a
	// cycle is pending.
	Check(ctx context.Context) (CheckCycle, error)

	// State returns the check cycle state.
	State() domain.CheckState

	// Last returns the most recent completed outcome, if it is still current.
	Last() (domain.CheckOutcome, bool)
}

// PanelProvider creates independent checker panels. Each panel owns its own
// selection and check cycle, so concurrent callers never share state.
type PanelProvider interface {
	// NewPanel creates a panel in mode. Non-check modes are accepted but a
	// panel in such a mode never issues a check.
	NewPanel(mode domain.CheckerMode) (CheckerPanel, error)
}

// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

// SuggestionsLoaded carries candidates for one debounced query. Seq is the
// debouncer sequence number the query was issued under; a message whose
// Seq is no longer current is stale and discarded.
type SuggestionsLoaded struct {
	Seq        uint64
	Category   domain.Category
	Query      string
	Candidates []domain.Candidate
}

// CheckFinished carries the outcome of a check cycle. Seq identifies the
// trigger that started the cycle.
type CheckFinished struct {
	Seq     uint64
	Outcome domain.CheckOutcome
}

// Failed reports whether the cycle ended in the error state.
func (m CheckFinished) Failed() bool {
	return m.Outcome.State == domain.CheckError
}

// SettingsReloaded signals the configuration file changed on disk.
type SettingsReloaded struct {
	Settings *domain.AppSettings
	Err      error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// Package tui provides an interactive terminal user interface for medcheck.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides search-as-you-type suggestions.
	Search driving.CandidateSearchService

	// Panels creates the checker panel behind the screen.
	Panels driving.PanelProvider

	// Settings supplies the debounce interval and default mode. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Panels == nil {
		return ErrMissingPanelProvider
	}
	return nil
}

// settings returns the configured settings or the defaults.
func (p *Ports) settings() domain.AppSettings {
	if p.Settings != nil {
		if s, err := p.Settings.Get(); err == nil && s != nil {
			return *s
		}
	}
	return domain.DefaultAppSettings()
}

package mcp

import (
	"net/http"

	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides candidate suggestions.
	Search driving.CandidateSearchService

	// Panels creates one checker panel per tool call.
	Panels driving.PanelProvider

	// History lists recorded check cycles. Optional.
	History driving.HistoryService

	// Metrics serves Prometheus metrics on the HTTP transport. Optional.
	Metrics http.Handler
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Panels == nil {
		return ErrMissingPanelProvider
	}
	return nil
}

package tui

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("tui: search service is required")

// ErrMissingPanelProvider is returned when the panel provider is not provided.
var ErrMissingPanelProvider = errors.New("tui: panel provider is required")

// Package mcp provides an MCP (Model Context Protocol) server adapter for medcheck.
// It lets AI assistants search medications, food items and complementary
// medicines and run interaction checks.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingPanelProvider is returned when no panel provider is provided.
var ErrMissingPanelProvider = errors.New("mcp: panel provider is required")

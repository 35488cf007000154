package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for medcheck resources.
	uriScheme = "medcheck://"

	// historyResourceLimit caps the entries served by the history resource.
	historyResourceLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "modes",
		Name:        "modes",
		Description: "Checker modes with their required selection and searchable categories",
		MIMEType:    "application/json",
	}, s.handleModesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Recently run interaction checks",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

type modeInfo struct {
	Mode        string         `json:"mode"`
	Description string         `json:"description"`
	Checks      bool           `json:"checks"`
	Categories  []string       `json:"categories"`
	Requires    map[string]int `json:"requires,omitempty"`
}

// handleModesResource describes every checker mode.
func (s *Server) handleModesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	modes := append(domain.CheckModes(), domain.ModeDrugInfo, domain.ModePatientTracker)

	infos := make([]modeInfo, len(modes))
	for i, mode := range modes {
		info := modeInfo{
			Mode:        mode.String(),
			Description: mode.Description(),
			Checks:      mode.IsCheckMode(),
		}
		for _, c := range mode.SearchCategories() {
			info.Categories = append(info.Categories, c.String())
		}
		if reqs := mode.Requirement(); reqs != nil {
			info.Requires = make(map[string]int, len(reqs))
			for c, n := range reqs {
				info.Requires[c.String()] = n
			}
		}
		infos[i] = info
	}

	return jsonResource(req.Params.URI, infos)
}

// handleHistoryResource returns the most recent checks.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return jsonResource(req.Params.URI, []HistoryEntryOutput{})
	}

	entries, err := s.ports.History.Recent(ctx, historyResourceLimit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	out := make([]HistoryEntryOutput, len(entries))
	for i := range entries {
		out[i] = historyEntryOutput(entries[i])
	}
	return jsonResource(req.Params.URI, out)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

// SearchInput is the input schema for the search_candidates tool.
type SearchInput struct {
	Category string `json:"category" jsonschema:"one of drug, food or complementary"`
	Query    string `json:"query" jsonschema:"partial name, at least 2 characters"`
}

// SearchOutput is the output schema for the search_candidates tool.
type SearchOutput struct {
	Candidates []domain.Candidate `json:"candidates"`
	Count      int                `json:"count"`
}

// CheckInput is the input schema for the check_interactions tool.
type CheckInput struct {
	Mode    string   `json:"mode" jsonschema:"drug-drug, drug-food or drug-comp"`
	DrugIDs []string `json:"drug_ids,omitempty" jsonschema:"medication ids"`
	FoodIDs []string `json:"food_ids,omitempty" jsonschema:"food item ids"`
	CompIDs []string `json:"comp_ids,omitempty" jsonschema:"complementary medicine ids"`
}

// CheckOutput is the output schema for the check_interactions tool.
type CheckOutput struct {
	Mode           string                `json:"mode"`
	Total          int                   `json:"total"`
	Counts         domain.SeverityCounts `json:"counts"`
	NoInteractions bool                  `json:"no_interactions"`
	Interactions   []InteractionOutput   `json:"interactions"`
}

// InteractionOutput is one interaction of the unified list.
type InteractionOutput struct {
	Kind           string   `json:"kind"`
	Title          string   `json:"title"`
	Severity       string   `json:"severity"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation,omitempty"`
	Effects        []string `json:"effects,omitempty"`
}

// HistoryInput is the input schema for the list_history tool.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of entries to return (default 20)"`
}

// HistoryOutput is the output schema for the list_history tool.
type HistoryOutput struct {
	Entries []HistoryEntryOutput `json:"entries"`
	Count   int                  `json:"count"`
}

// HistoryEntryOutput is one recorded check cycle.
type HistoryEntryOutput struct {
	ID        string                `json:"id"`
	Mode      string                `json:"mode"`
	State     string                `json:"state"`
	Total     int                   `json:"total"`
	Counts    domain.SeverityCounts `json:"counts"`
	Message   string                `json:"message,omitempty"`
	CheckedAt string                `json:"checked_at"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_candidates",
		Description: "Suggest medications, food items or complementary medicines by partial name",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "check_interactions",
		Description: "Check known interactions between the given medications, food items and complementary medicines",
	}, s.handleCheck)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_history",
		Description: "List recently run interaction checks, most recent first",
	}, s.handleHistory)
}

// handleSearch handles the search_candidates tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	category, err := domain.ParseCategory(input.Category)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	candidates := s.ports.Search.Search(ctx, category, input.Query)
	return nil, SearchOutput{Candidates: candidates, Count: len(candidates)}, nil
}

// handleCheck runs one check cycle on a fresh panel. Deficiencies and
// backend failures are reported as tool errors carrying the cycle message.
func (s *Server) handleCheck(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CheckInput,
) (*mcp.CallToolResult, CheckOutput, error) {
	mode, err := domain.ParseCheckerMode(input.Mode)
	if err != nil {
		return nil, CheckOutput{}, err
	}
	if !mode.IsCheckMode() {
		return nil, CheckOutput{}, fmt.Errorf("%s: %w", mode, domain.ErrNotCheckMode)
	}

	panel, err := s.ports.Panels.NewPanel(mode)
	if err != nil {
		return nil, CheckOutput{}, err
	}
	for _, group := range []struct {
		category domain.Category
		ids      []string
	}{
		{domain.CategoryDrug, input.DrugIDs},
		{domain.CategoryFood, input.FoodIDs},
		{domain.CategoryComplementary, input.CompIDs},
	} {
		for _, id := range group.ids {
			if _, err := panel.Add(domain.SelectedItem{ID: id, Category: group.category}); err != nil {
				return nil, CheckOutput{}, fmt.Errorf("adding %s %q: %w", group.category.Noun(), id, err)
			}
		}
	}

	cycle, err := panel.Check(ctx)
	if err != nil {
		return nil, CheckOutput{}, err
	}
	outcome, err := cycle.Wait(ctx)
	if err != nil {
		return nil, CheckOutput{}, err
	}
	if outcome.State != domain.CheckSuccess {
		return nil, CheckOutput{}, errors.New(outcome.Message)
	}

	return nil, checkOutput(outcome), nil
}

func checkOutput(outcome domain.CheckOutcome) CheckOutput {
	result := outcome.Result
	unified := result.Unified()

	out := CheckOutput{
		Mode:           outcome.Mode.String(),
		Total:          result.Total(),
		Counts:         result.SeverityCounts(),
		NoInteractions: outcome.NoInteractions(),
		Interactions:   make([]InteractionOutput, 0, len(unified)),
	}
	for _, entry := range unified {
		out.Interactions = append(out.Interactions, InteractionOutput{
			Kind:           string(entry.Kind),
			Title:          entry.DisplayTitle(),
			Severity:       entry.Level().String(),
			Description:    entry.Description,
			Recommendation: entry.Recommendation,
			Effects:        entry.Breakdown().Lines(),
		})
	}
	return out
}

// handleHistory handles the list_history tool invocation.
func (s *Server) handleHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	out := HistoryOutput{Entries: []HistoryEntryOutput{}}
	if s.ports.History == nil {
		return nil, out, nil
	}

	entries, err := s.ports.History.Recent(ctx, input.Limit)
	if err != nil {
		return nil, HistoryOutput{}, fmt.Errorf("listing history: %w", err)
	}
	for i := range entries {
		out.Entries = append(out.Entries, historyEntryOutput(entries[i]))
	}
	out.Count = len(out.Entries)
	return nil, out, nil
}

func historyEntryOutput(e domain.HistoryEntry) HistoryEntryOutput {
	return HistoryEntryOutput{
		ID:        e.ID,
		Mode:      e.Mode.String(),
		State:     e.State.String(),
		Total:     e.Total,
		Counts:    e.Counts,
		Message:   e.Message,
		CheckedAt: e.CheckedAt.Format(time.RFC3339),
	}
}

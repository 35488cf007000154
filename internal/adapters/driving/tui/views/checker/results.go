package checker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/medcheck-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

// renderOutcome renders the result pane for a completed cycle.
func renderOutcome(s *styles.Styles, outcome domain.CheckOutcome, width int) string {
	if outcome.State == domain.CheckError {
		return s.Error.Render(outcome.Message)
	}
	if outcome.NoInteractions() {
		return s.Success.Render("No known interactions found")
	}

	result := outcome.Result
	counts := result.SeverityCounts()
	lines := []string{
		s.Subtitle.Render(fmt.Sprintf("Interactions (%d)", result.Total())),
		fmt.Sprintf("%s %d  %s %d  %s %d",
			s.Badge(domain.SeverityMajor), counts.Major,
			s.Badge(domain.SeverityModerate), counts.Moderate,
			s.Badge(domain.SeverityMinor), counts.Minor),
		"",
	}

	wrap := lipgloss.NewStyle().Width(max(width-4, 20))
	for _, entry := range result.Unified() {
		lines = append(lines,
			s.Badge(entry.Level())+" "+s.Normal.Bold(true).Render(entry.DisplayTitle())+
				" "+s.Muted.Render(entry.Kind.Label()))
		if entry.Description != "" {
			lines = append(lines, "  "+wrap.Render(entry.Description))
		}
		if entry.Recommendation != "" {
			lines = append(lines, "  "+s.Warning.Render("Recommendation: ")+entry.Recommendation)
		}
		lines = append(lines, renderEffects(s, entry.Breakdown())...)
		lines = append(lines, "")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func renderEffects(s *styles.Styles, b domain.EffectBreakdown) []string {
	if b.IsZero() {
		return nil
	}
	if !b.Structured {
		return []string{"  " + s.Muted.Render("Effects: "+b.Raw)}
	}
	lines := []string{"  " + s.Muted.Render("Effects:")}
	for _, text := range b.Lines() {
		lines = append(lines, "    - "+text)
	}
	return lines
}

// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/medcheck-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

// SuggestionList displays search-as-you-type candidates in a navigable list.
type SuggestionList struct {
	candidates []domain.Candidate
	category   domain.Category
	selected   int
	styles     *styles.Styles
	width      int
	height     int
}

// NewSuggestionList creates a new suggestion list component.
func NewSuggestionList(s *styles.Styles) *SuggestionList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &SuggestionList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// View renders the suggestion list. An empty list renders nothing.
func (l *SuggestionList) View() string {
	if len(l.candidates) == 0 {
		return ""
	}

	visible := l.height
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.candidates))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderCandidate(i))
	}
	return strings.Join(lines, "\n")
}

func (l *SuggestionList) renderCandidate(index int) string {
	c := l.candidates[index]
	label := c.Label
	if label == "" {
		label = "ID: " + c.ID
	}

	maxLen := l.width - 6
	if maxLen < 10 {
		maxLen = 10
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}

	if index == l.selected {
		return l.styles.Selected.Render(fmt.Sprintf("> %s", label))
	}
	return l.styles.Normal.Render(fmt.Sprintf("  %s", label))
}

// SetCandidates replaces the list and resets the highlight.
func (l *SuggestionList) SetCandidates(category domain.Category, candidates []domain.Candidate) {
	l.category = category
	l.candidates = candidates
	l.selected = 0
}

// Clear empties the list.
func (l *SuggestionList) Clear() {
	l.candidates = nil
	l.selected = 0
}

// Candidates returns the current candidates.
func (l *SuggestionList) Candidates() []domain.Candidate {
	return l.candidates
}

// Selected returns the index of the highlighted candidate.
func (l *SuggestionList) Selected() int {
	return l.selected
}

// SelectedItem returns the highlighted candidate as a selectable item.
func (l *SuggestionList) SelectedItem() (domain.SelectedItem, bool) {
	if l.selected < 0 || l.selected >= len(l.candidates) {
		return domain.SelectedItem{}, false
	}
	return domain.FromCandidate(l.candidates[l.selected], l.category), true
}

// MoveUp moves the highlight up.
func (l *SuggestionList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves the highlight down.
func (l *SuggestionList) MoveDown() {
	if l.selected < len(l.candidates)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *SuggestionList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of candidates.
func (l *SuggestionList) Count() int {
	return len(l.candidates)
}

// IsEmpty returns whether the list is empty.
func (l *SuggestionList) IsEmpty() bool {
	return len(l.candidates) == 0
}

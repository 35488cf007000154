// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/medcheck-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/medcheck-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

// Bar displays the check cycle state and keybinding hints.
type Bar struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	spinner   spinner.Model
	state     domain.CheckState
	message   string
	selection int
	width     int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Subtitle

	return &Bar{
		styles:  s,
		keymap:  km,
		spinner: sp,
		state:   domain.CheckIdle,
		width:   80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update advances the spinner while a check is pending.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); !ok || s.state != domain.CheckPending {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the state and message.
func (s *Bar) renderLeft() string {
	switch s.state {
	case domain.CheckPending:
		return s.spinner.View() + s.styles.Muted.Render(" Checking interactions...")
	case domain.CheckError:
		if s.message != "" {
			return s.styles.Error.Render(s.message)
		}
		return s.styles.Error.Render("Error")
	case domain.CheckSuccess:
		return s.styles.Success.Render(s.message)
	case domain.CheckIdle:
	}
	if s.message != "" {
		return s.styles.Normal.Render(s.message)
	}
	if s.selection > 0 {
		return s.styles.Normal.Render(fmt.Sprintf("%d selected", s.selection))
	}
	return s.styles.Muted.Render("Ready")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	if s.selection > 0 {
		bindings = s.keymap.SelectionHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the check state. Entering pending starts the spinner.
func (s *Bar) SetState(state domain.CheckState) tea.Cmd {
	s.state = state
	if state == domain.CheckPending {
		return s.spinner.Tick
	}
	return nil
}

// State returns the current state.
func (s *Bar) State() domain.CheckState {
	return s.state
}

// SetMessage sets a message shown next to the state.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetSelectionCount sets the number of selected items.
func (s *Bar) SetSelectionCount(count int) {
	s.selection = count
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear resets the status bar to the idle state.
func (s *Bar) Clear() {
	s.state = domain.CheckIdle
	s.message = ""
}

// Bindings returns the hints currently shown.
func (s *Bar) Bindings() []key.Binding {
	if s.selection > 0 {
		return s.keymap.SelectionHelp()
	}
	return s.keymap.ShortHelp()
}

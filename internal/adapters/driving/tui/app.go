package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/medcheck-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/medcheck-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/medcheck-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/medcheck-cli/internal/adapters/driving/tui/views/checker"
	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driving"
	"github.com/custodia-labs/medcheck-cli/internal/core/services"
	"github.com/custodia-labs/medcheck-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// panel is the checker panel owned by this screen.
	panel driving.CheckerPanel

	// checkerView renders the panel.
	checkerView *checker.View

	// debounce is the active search debounce interval.
	debounce string

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	settings := ports.settings()
	panel, err := ports.Panels.NewPanel(settings.Checker.DefaultMode)
	if err != nil {
		return nil, fmt.Errorf("creating panel: %w", err)
	}

	view, err := checker.NewView(
		styles.DefaultStyles(), keymap.DefaultKeyMap(),
		ports.Search, panel, services.NewDebouncer(settings.Search.Debounce),
	)
	if err != nil {
		return nil, fmt.Errorf("creating checker view: %w", err)
	}

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		panel:       panel,
		checkerView: view,
		debounce:    settings.Search.Debounce.String(),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.checkerView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("medcheck - Interaction Checker"),
		a.checkerView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case messages.SettingsReloaded:
		a.applySettings(msg)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	a.checkerView, cmd = a.checkerView.Update(msg)
	return a, cmd
}

// applySettings picks up a changed debounce interval. The active mode and
// selection are left alone.
func (a *App) applySettings(msg messages.SettingsReloaded) {
	if msg.Err != nil {
		logger.Warn("Reloading settings failed: %v", msg.Err)
		a.checkerView.SetStatusMessage("Settings reload failed: " + msg.Err.Error())
		return
	}
	if msg.Settings == nil {
		return
	}
	if d := msg.Settings.Search.Debounce.String(); d != a.debounce {
		a.debounce = d
		a.checkerView.SetDebouncer(services.NewDebouncer(msg.Settings.Search.Debounce))
	}
	a.checkerView.SetStatusMessage("Settings reloaded")
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return a.checkerView.View()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Program builds the bubbletea program without running it, so callers can
// send messages such as settings reloads from other goroutines.
func (a *App) Program() *tea.Program {
	return tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
}

// Panel returns the checker panel behind the screen.
func (a *App) Panel() driving.CheckerPanel {
	return a.panel
}

// Mode returns the active checker mode.
func (a *App) Mode() domain.CheckerMode {
	return a.panel.Mode()
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.checkerView.SetDimensions(width, height)
}

// ReloadSettings reads settings and wraps them in a message for Update.
func ReloadSettings(settings driving.SettingsService) tea.Msg {
	s, err := settings.Get()
	return messages.SettingsReloaded{Settings: s, Err: err}
}

package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/medcheck-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
	"github.com/custodia-labs/medcheck-cli/internal/core/services"
)

// MockSearchService implements driving.CandidateSearchService for testing.
type MockSearchService struct{}

func (m *MockSearchService) Search(context.Context, domain.Category, string) []domain.Candidate {
	return []domain.Candidate{}
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	settings domain.AppSettings
	err      error
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *MockSettingsService) Save(*domain.AppSettings) error { return nil }
func (m *MockSettingsService) Set(string, string) error       { return nil }
func (m *MockSettingsService) Keys() []string                 { return nil }
func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func newTestPorts() *Ports {
	return &Ports{
		Search: &MockSearchService{},
		Panels: services.NewPanelFactory(nil, 5*time.Second),
	}
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts())

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, domain.ModeDrugDrug, app.Mode())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"missing search", &Ports{Panels: services.NewPanelFactory(nil, 0)}, ErrMissingSearchService},
		{"missing panels", &Ports{Search: &MockSearchService{}}, ErrMissingPanelProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, err := NewApp(tt.ports)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, app)
		})
	}
}

func TestNewApp_UsesDefaultModeSetting(t *testing.T) {
	settings := domain.DefaultAppSettings()
	settings.Checker.DefaultMode = domain.ModeDrugComp
	ports := newTestPorts()
	ports.Settings = &MockSettingsService{settings: settings}

	app, err := NewApp(ports)

	require.NoError(t, err)
	assert.Equal(t, domain.ModeDrugComp, app.Mode())
}

func TestNewApp_SettingsErrorFallsBackToDefaults(t *testing.T) {
	ports := newTestPorts()
	ports.Settings = &MockSettingsService{err: errors.New("broken toml")}

	app, err := NewApp(ports)

	require.NoError(t, err)
	assert.Equal(t, domain.ModeDrugDrug, app.Mode())
}

func TestApp_Init(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.NotNil(t, app.Init())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	assert.Equal(t, "Initialising...", app.View())

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "drug-drug")
}

func TestApp_Update_CtrlCQuits(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_Update_TabSwitchesMode(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(100, 30)

	app.Update(tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, domain.ModeDrugFood, app.Mode())
}

func TestApp_SettingsReloaded(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(160, 30)

	settings := domain.DefaultAppSettings()
	settings.Search.Debounce = 500 * time.Millisecond
	app.Update(messages.SettingsReloaded{Settings: &settings})

	assert.Equal(t, "500ms", app.debounce)
	assert.Contains(t, app.View(), "Settings reloaded")

	app.Update(messages.SettingsReloaded{Err: errors.New("bad file")})
	assert.Contains(t, app.View(), "Settings reload failed: bad file")
}

func TestReloadSettings(t *testing.T) {
	settings := domain.DefaultAppSettings()
	msg := ReloadSettings(&MockSettingsService{settings: settings})

	reloaded, ok := msg.(messages.SettingsReloaded)
	require.True(t, ok)
	require.NoError(t, reloaded.Err)
	assert.Equal(t, settings.Search.Debounce, reloaded.Settings.Search.Debounce)
}

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

func TestSettingsCmd_ShowsDefaults(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("settings")

	require.NoError(t, err)
	assert.Contains(t, out, "[Backend]")
	assert.Contains(t, out, "URL: (not set)")
	assert.Contains(t, out, "Timeout: 8s")
	assert.Contains(t, out, "Debounce: 300ms")
	assert.Contains(t, out, "Default mode: drug-drug")
	assert.Contains(t, out, "settings set backend.url")
}

func TestSettingsSetCmd(t *testing.T) {
	f, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("settings", "set", "search.debounce", "450ms")
	require.NoError(t, err)
	assert.Contains(t, out, "Set search.debounce")
	assert.Equal(t, "450ms", f.config.GetString("search.debounce"))

	_, err = execute("settings", "set", "search.api_key", "sk-1234567890abcdef")
	require.NoError(t, err)
	out, err = execute("settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "API Key: sk-1...cdef")
}

func TestSettingsSetCmd_InvalidValue(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("settings", "set", "checker.default_mode", "patient-tracker")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute("settings", "set", "no.such.key", "1")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Valid keys:")
}

func TestSettingsModeCmd(t *testing.T) {
	f, cleanup := setupTestServices()
	defer cleanup()

	rootCmd.SetIn(stringReader("2\n"))
	defer rootCmd.SetIn(nil)
	out, err := execute("settings", "mode")

	require.NoError(t, err)
	assert.Contains(t, out, "Default mode set to: drug-food")
	assert.Equal(t, "drug-food", f.config.GetString("checker.default_mode"))
}

func TestSettingsModeCmd_InvalidChoice(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	rootCmd.SetIn(stringReader("9\n"))
	defer rootCmd.SetIn(nil)
	_, err := execute("settings", "mode")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid selection")
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Short key", input: "abc123", expected: "****"},
		{name: "Exactly 8 chars", input: "12345678", expected: "****"},
		{name: "Long key", input: "sk-1234567890abcdef", expected: "sk-1...cdef"},
		{name: "Empty key", input: "", expected: "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskAPIKey(tt.input))
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{name: "Empty uses default", input: "", maxVal: 3, defaultVal: 1, expected: 1},
		{name: "Valid choice", input: "2", maxVal: 3, defaultVal: 1, expected: 2},
		{name: "Out of range", input: "4", maxVal: 3, defaultVal: 0, expected: 0},
		{name: "Not a number", input: "x", maxVal: 3, defaultVal: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseChoice(tt.input, tt.maxVal, tt.defaultVal))
		})
	}
}

func TestRateLimitText(t *testing.T) {
	assert.Equal(t, "unlimited", rateLimitText(0))
	assert.Equal(t, "2.5 req/s", rateLimitText(2.5))
}

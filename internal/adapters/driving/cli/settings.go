package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the backend, search index and checker defaults.

Settings are stored in ~/.medcheck/config.toml. MEDCHECK_* environment
variables override the file for the current process only.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set one setting",
	Long: `Set one setting by key.

Examples:
  medcheck settings set backend.url https://api.example.org
  medcheck settings set search.debounce 300ms
  medcheck settings set checker.default_mode drug-food`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsModeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Choose the default checker mode",
	Long: `Pick the mode new checker panels start in.

Available modes:
  drug-drug - Medication against medication
  drug-food - Medications against food items
  drug-comp - Medications against complementary medicines`,
	RunE: runSettingsMode,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsModeCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Backend]")
	cmd.Printf("  URL: %s\n", valueOrUnset(settings.Backend.URL))
	cmd.Printf("  Timeout: %s\n", settings.Backend.Timeout)
	cmd.Printf("  Rate limit: %s\n", rateLimitText(settings.Backend.RateLimit))
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  URL: %s\n", valueOrUnset(settings.Search.URL))
	if settings.Search.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Search.APIKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	cmd.Printf("  Timeout: %s\n", settings.Search.Timeout)
	cmd.Printf("  Debounce: %s\n", settings.Search.Debounce)
	if settings.Search.CacheSize > 0 {
		cmd.Printf("  Cache: %d entries for %s\n", settings.Search.CacheSize, settings.Search.CacheTTL)
	} else {
		cmd.Printf("  Cache: disabled\n")
	}
	cmd.Println()

	cmd.Println("[Checker]")
	cmd.Printf("  Default mode: %s (%s)\n", settings.Checker.DefaultMode, settings.Checker.DefaultMode.Description())
	cmd.Println()

	cmd.Println("[Logging]")
	cmd.Printf("  Verbose: %t\n", settings.Logging.Verbose)
	cmd.Println()

	switch err := settings.Validate(); {
	case err != nil:
		cmd.Printf("Warning: %v\n", err)
	case !settings.Backend.IsConfigured():
		cmd.Println("Run 'medcheck settings set backend.url <url>' to configure the backend.")
	default:
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("%w\nValid keys: %s", err, strings.Join(settingsService.Keys(), ", "))
		}
		return fmt.Errorf("failed to save setting: %w", err)
	}

	cmd.Printf("Set %s\n", args[0])
	return nil
}

func runSettingsMode(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Select Default Checker Mode")
	cmd.Println("---------------------------")
	modes := domain.CheckModes()
	for i, mode := range modes {
		cmd.Printf("  %d. %s - %s\n", i+1, mode, mode.Description())
	}
	cmd.Print("\nEnter choice: ")
	input := readLine(reader)
	idx := parseChoice(input, len(modes), 0)
	if idx == 0 {
		return errors.New("invalid selection")
	}

	selected := modes[idx-1]
	if err := settingsService.Set("checker.default_mode", selected.String()); err != nil {
		return fmt.Errorf("failed to set default mode: %w", err)
	}

	cmd.Printf("Default mode set to: %s\n", selected)
	return nil
}

func valueOrUnset(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}

func rateLimitText(rps float64) string {
	if rps <= 0 {
		return "unlimited"
	}
	return strconv.FormatFloat(rps, 'f', -1, 64) + " req/s"
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// Package cli provides the cobra command tree for medcheck.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/medcheck-cli/internal/core/ports/driving"
	"github.com/custodia-labs/medcheck-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// ConfigWatcher reloads configuration when the backing file changes.
type ConfigWatcher interface {
	Watch(ctx context.Context, onChange func()) error
}

// Services aggregates everything the commands need. Fields left nil make the
// dependent commands report that they are not configured.
type Services struct {
	Search   driving.CandidateSearchService
	Panels   driving.PanelProvider
	Session  driving.SessionService
	Admin    driving.AdminService
	History  driving.HistoryService
	Settings driving.SettingsService
	Watcher  ConfigWatcher
	Metrics  http.Handler

	// OnLogout registers teardown run when the session ends.
	OnLogout func(hook func())
}

// Options are the global flags handed to the bootstrap function.
type Options struct {
	ConfigDir string
	Verbose   bool
}

// Bootstrap builds services once flags are parsed.
type Bootstrap func(ctx context.Context, opts Options) (*Services, error)

// Service references injected by SetServices or the bootstrap function.
var (
	searchService   driving.CandidateSearchService
	panelProvider   driving.PanelProvider
	sessionService  driving.SessionService
	adminService    driving.AdminService
	historyService  driving.HistoryService
	settingsService driving.SettingsService
	configWatcher   ConfigWatcher
	metricsHandler  http.Handler
	onLogout        func(hook func())
)

var (
	bootstrap   Bootstrap
	flagVerbose bool
	flagConfig  string
)

// errNotConfigured builds the error a command returns when its service is missing.
func errNotConfigured(what string) error {
	return errors.New(what + " not configured")
}

var rootCmd = &cobra.Command{
	Use:   "medcheck",
	Short: "Check medication, food and complementary medicine interactions",
	Long: `medcheck searches medications, food items and complementary medicines,
and checks a selection of them for known interactions.

Run "medcheck tui" for the interactive checker, or use the search and check
commands from scripts.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config directory (default ~/.medcheck)")
}

// SetServices injects services directly, bypassing the bootstrap function.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	searchService = s.Search
	panelProvider = s.Panels
	sessionService = s.Session
	adminService = s.Admin
	historyService = s.History
	settingsService = s.Settings
	configWatcher = s.Watcher
	metricsHandler = s.Metrics
	onLogout = s.OnLogout
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. build is called after flag parsing so the
// --config flag can influence where services read from.
func Execute(ctx context.Context, build Bootstrap) error {
	bootstrap = build
	return rootCmd.ExecuteContext(ctx)
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	if flagVerbose {
		logger.SetVerbose(true)
	}
	if bootstrap == nil || cmd.Name() == "version" {
		return nil
	}
	services, err := bootstrap(cmd.Context(), Options{ConfigDir: flagConfig, Verbose: flagVerbose})
	if err != nil {
		return err
	}
	SetServices(services)
	return nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/medcheck-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/medcheck-cli/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive checker",
	Long: `Launch the interactive terminal interaction checker.

Controls:
  Tab/Shift+Tab - Switch checker mode (clears the selection)
  Ctrl+T        - Cycle search category
  ↑/↓           - Navigate suggestions
  Enter         - Add the highlighted suggestion
  Ctrl+D        - Remove the last item
  Ctrl+X        - Clear all items
  Ctrl+R        - Check interactions
  Esc/Ctrl+C    - Quit

Edits to config.toml are picked up while the checker is running.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Search:   searchService,
		Panels:   panelProvider,
		Settings: settingsService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	// Items picked under one session never outlive it.
	if onLogout != nil {
		onLogout(app.Panel().Clear)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	app.WithContext(ctx)

	// Log lines would corrupt the alternate screen.
	logger.SetOutput(io.Discard)
	defer logger.SetOutput(os.Stderr)

	p := app.Program()

	if configWatcher != nil && settingsService != nil {
		go func() {
			err := configWatcher.Watch(ctx, func() {
				p.Send(tui.ReloadSettings(settingsService))
			})
			if err != nil {
				logger.Warn("Config watch stopped: %v", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

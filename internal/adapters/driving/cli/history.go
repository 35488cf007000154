package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent interaction checks",
	Long: `Lists locally recorded check cycles, most recent first.

The history is a log only. Checks always query the backend.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errNotConfigured("history service")
	}

	entries, err := historyService.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		cmd.Println("No checks recorded yet.")
		return nil
	}

	for _, e := range entries {
		cmd.Printf("  %s  %-9s %-7s %s\n",
			e.CheckedAt.Local().Format(time.DateTime), e.Mode, e.State, historySummary(e))
	}
	return nil
}

func historySummary(e domain.HistoryEntry) string {
	if e.State != domain.CheckSuccess {
		return e.Message
	}
	if e.Total == 0 {
		return "No known interactions found"
	}
	c := e.Counts
	return fmt.Sprintf("%d interaction(s): %d major, %d moderate, %d minor", e.Total, c.Major, c.Moderate, c.Minor)
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [category] [query]",
	Short: "Search medications, food items or complementary medicines",
	Long: `Looks up candidates by name in one category.

Categories: medications (drug), food_items (food), complementary_medicines (comp).
Queries shorter than two characters return nothing. At most ten candidates
are shown.`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errNotConfigured("search service")
	}

	category, err := domain.ParseCategory(args[0])
	if err != nil {
		return err
	}

	candidates := searchService.Search(cmd.Context(), category, args[1])

	if searchJSON {
		return outputSearchJSON(cmd, candidates)
	}
	return outputSearchTable(cmd, category, candidates)
}

func outputSearchJSON(cmd *cobra.Command, candidates []domain.Candidate) error {
	data, err := json.MarshalIndent(candidates, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, category domain.Category, candidates []domain.Candidate) error {
	if len(candidates) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Printf("%s:\n", category.Collection())
	for i, c := range candidates {
		cmd.Printf("  [%d] %s (id %s)\n", i+1, domain.FromCandidate(c, category).Label(), c.ID)
	}
	return nil
}

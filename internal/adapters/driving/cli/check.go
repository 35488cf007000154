package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

var (
	checkMode  string
	checkDrugs []string
	checkFoods []string
	checkComps []string
	checkJSON  bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a selection for interactions",
	Long: `Runs one interaction check over the given items.

Items are passed by id, optionally with a display name as id=Name.

Examples:
  medcheck check --mode drug-drug --drug 12=Warfarin --drug 7=Aspirin
  medcheck check --mode drug-food --drug 12 --food 3=Grapefruit --json`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkMode, "mode", "m", "",
		"checker mode: drug-drug, drug-food or drug-comp (default from settings)")
	checkCmd.Flags().StringArrayVar(&checkDrugs, "drug", nil, "medication id or id=Name (repeatable)")
	checkCmd.Flags().StringArrayVar(&checkFoods, "food", nil, "food item id or id=Name (repeatable)")
	checkCmd.Flags().StringArrayVar(&checkComps, "comp", nil, "complementary medicine id or id=Name (repeatable)")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	if panelProvider == nil {
		return errNotConfigured("checker")
	}

	mode, err := resolveCheckMode(checkMode)
	if err != nil {
		return err
	}

	panel, err := panelProvider.NewPanel(mode)
	if err != nil {
		return err
	}

	for _, group := range []struct {
		category domain.Category
		args     []string
	}{
		{domain.CategoryDrug, checkDrugs},
		{domain.CategoryFood, checkFoods},
		{domain.CategoryComplementary, checkComps},
	} {
		for _, arg := range group.args {
			item, err := parseItemArg(arg, group.category)
			if err != nil {
				return err
			}
			if _, err := panel.Add(item); err != nil {
				return fmt.Errorf("adding %s: %w", item.Label(), err)
			}
		}
	}

	if !panel.CanCheck() {
		return fmt.Errorf("%w: select at least 2 items to check", domain.ErrInvalidInput)
	}

	cycle, err := panel.Check(cmd.Context())
	if err != nil {
		return err
	}
	outcome, err := cycle.Wait(cmd.Context())
	if err != nil {
		return err
	}
	if outcome.State != domain.CheckSuccess {
		return errors.New(outcome.Message)
	}

	if checkJSON {
		return outputCheckJSON(cmd, outcome)
	}
	outputCheckText(cmd, outcome)
	return nil
}

// resolveCheckMode parses the --mode flag, falling back to the configured
// default mode.
func resolveCheckMode(flag string) (domain.CheckerMode, error) {
	if flag == "" {
		if settingsService != nil {
			if s, err := settingsService.Get(); err == nil {
				return s.Checker.DefaultMode, nil
			}
		}
		return domain.ModeDrugDrug, nil
	}
	mode, err := domain.ParseCheckerMode(flag)
	if err != nil {
		return "", err
	}
	if !mode.IsCheckMode() {
		return "", fmt.Errorf("%s: %w", mode, domain.ErrNotCheckMode)
	}
	return mode, nil
}

// parseItemArg parses "id" or "id=Name".
func parseItemArg(arg string, category domain.Category) (domain.SelectedItem, error) {
	id, name, _ := strings.Cut(arg, "=")
	item := domain.SelectedItem{
		ID:       strings.TrimSpace(id),
		Name:     strings.TrimSpace(name),
		Category: category,
	}
	if item.ID == "" {
		return domain.SelectedItem{}, fmt.Errorf("%w: empty %s id in %q", domain.ErrInvalidInput, category.Noun(), arg)
	}
	return item, nil
}

type checkEntryJSON struct {
	Kind           string   `json:"kind"`
	Title          string   `json:"title"`
	Severity       string   `json:"severity"`
	Description    string   `json:"description,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
	Effects        []string `json:"effects,omitempty"`
}

type checkResultJSON struct {
	Mode           string                `json:"mode"`
	Total          int                   `json:"total"`
	Counts         domain.SeverityCounts `json:"counts"`
	NoInteractions bool                  `json:"no_interactions"`
	Interactions   []checkEntryJSON      `json:"interactions"`
}

func outputCheckJSON(cmd *cobra.Command, outcome domain.CheckOutcome) error {
	unified := outcome.Result.Unified()
	out := checkResultJSON{
		Mode:           outcome.Mode.String(),
		Total:          outcome.Result.Total(),
		Counts:         outcome.Result.SeverityCounts(),
		NoInteractions: outcome.NoInteractions(),
		Interactions:   make([]checkEntryJSON, 0, len(unified)),
	}
	for _, e := range unified {
		out.Interactions = append(out.Interactions, checkEntryJSON{
			Kind:           e.Kind.Label(),
			Title:          e.DisplayTitle(),
			Severity:       e.Level().String(),
			Description:    e.Description,
			Recommendation: e.Recommendation,
			Effects:        e.Breakdown().Lines(),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputCheckText(cmd *cobra.Command, outcome domain.CheckOutcome) {
	if outcome.NoInteractions() {
		cmd.Println("No known interactions found")
		return
	}

	counts := outcome.Result.SeverityCounts()
	cmd.Printf("%d interaction(s) found: %d major, %d moderate, %d minor\n",
		outcome.Result.Total(), counts.Major, counts.Moderate, counts.Minor)
	cmd.Println()

	for i, e := range outcome.Result.Unified() {
		cmd.Printf("  [%d] %s (%s, %s)\n", i+1, e.DisplayTitle(), e.Kind.Label(), e.Level())
		if e.Description != "" {
			cmd.Printf("      %s\n", e.Description)
		}
		if e.Recommendation != "" {
			cmd.Printf("      Recommendation: %s\n", e.Recommendation)
		}
		for _, line := range e.Breakdown().Lines() {
			cmd.Printf("      - %s\n", line)
		}
		cmd.Println()
	}
}


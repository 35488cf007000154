package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

// minTriggerItems is the coarse gate for enabling the check action.
const minTriggerItems = 2

// CanTrigger is the coarse pre-check that enables the check action: at
// least two items of any category. The per-mode rules run again when the
// cycle starts and may still reject the selection.
func CanTrigger(items []domain.SelectedItem) bool {
	return len(items) >= minTriggerItems
}

// IsEligible reports whether items satisfy the mode's composition rule.
func IsEligible(items []domain.SelectedItem, mode domain.CheckerMode) bool {
	return CheckEligibility(items, mode).Ready
}

// DeficiencyMessage explains what the selection lacks for mode.
// Returns an empty string when the selection is eligible.
func DeficiencyMessage(items []domain.SelectedItem, mode domain.CheckerMode) string {
	return CheckEligibility(items, mode).Reason
}

// CheckEligibility validates items against the mode's requirement.
func CheckEligibility(items []domain.SelectedItem, mode domain.CheckerMode) domain.Eligibility {
	if !mode.IsCheckMode() {
		return domain.Eligibility{
			Reason: fmt.Sprintf("%s does not support interaction checks", mode.Description()),
		}
	}

	req := mode.Requirement()
	var missing []string
	for _, category := range domain.AllCategories() {
		need := req[category]
		if need == 0 {
			continue
		}
		have := countCategory(items, category)
		if have >= need {
			continue
		}
		missing = append(missing, missingPhrase(category, need, have))
	}

	if len(missing) == 0 {
		return domain.Eligibility{Ready: true}
	}
	return domain.Eligibility{
		Reason: fmt.Sprintf("Add %s to check %s interactions", strings.Join(missing, " and "), mode),
	}
}

// missingPhrase renders the shortfall for one category, e.g. "a food item",
// "at least 2 medications" or "1 more medication".
func missingPhrase(category domain.Category, need, have int) string {
	noun := category.Noun()
	switch {
	case need == 1:
		return "a " + noun
	case have == 0:
		return fmt.Sprintf("at least %d %ss", need, noun)
	case need-have == 1:
		return "1 more " + noun
	default:
		return fmt.Sprintf("%d more %ss", need-have, noun)
	}
}

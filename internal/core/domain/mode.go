package domain

import (
	"fmt"
	"strings"
)

const unknownDescription = "Unknown"

// CheckerMode selects which pair of categories a check cross-references.
// Exactly one mode is active per panel.
type CheckerMode string

// Available checker modes.
const (
	// ModeDrugDrug checks medications against each other.
	ModeDrugDrug CheckerMode = "drug-drug"

	// ModeDrugFood checks medications against food items.
	ModeDrugFood CheckerMode = "drug-food"

	// ModeDrugComp checks medications against complementary medicines.
	ModeDrugComp CheckerMode = "drug-comp"

	// ModeDrugInfo browses medication details. It never runs a check.
	ModeDrugInfo CheckerMode = "drug-info"

	// ModePatientTracker tracks patient medication lists. It never runs a check.
	ModePatientTracker CheckerMode = "patient-tracker"
)

// CheckModes returns the modes that run interaction checks, in tab order.
func CheckModes() []CheckerMode {
	return []CheckerMode{ModeDrugDrug, ModeDrugFood, ModeDrugComp}
}

// IsValid returns true if the mode is recognised.
func (m CheckerMode) IsValid() bool {
	switch m {
	case ModeDrugDrug, ModeDrugFood, ModeDrugComp, ModeDrugInfo, ModePatientTracker:
		return true
	default:
		return false
	}
}

// IsCheckMode returns true if the mode runs interaction checks.
func (m CheckerMode) IsCheckMode() bool {
	return m == ModeDrugDrug || m == ModeDrugFood || m == ModeDrugComp
}

// String returns the string representation.
func (m CheckerMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m CheckerMode) Description() string {
	switch m {
	case ModeDrugDrug:
		return "Drug-Drug interactions"
	case ModeDrugFood:
		return "Drug-Food interactions"
	case ModeDrugComp:
		return "Drug-Complementary interactions"
	case ModeDrugInfo:
		return "Drug information"
	case ModePatientTracker:
		return "Patient tracker"
	default:
		return unknownDescription
	}
}

// ModeRequirement is the minimum selection composition a mode needs,
// expressed as a per-category count.
type ModeRequirement map[Category]int

// Requirement returns the composition the mode requires before a check may run.
// Non-check modes return nil.
func (m CheckerMode) Requirement() ModeRequirement {
	switch m {
	case ModeDrugDrug:
		return ModeRequirement{CategoryDrug: 2}
	case ModeDrugFood:
		return ModeRequirement{CategoryDrug: 1, CategoryFood: 1}
	case ModeDrugComp:
		return ModeRequirement{CategoryDrug: 1, CategoryComplementary: 1}
	default:
		return nil
	}
}

// SearchCategories returns the categories a user may search for in this mode.
func (m CheckerMode) SearchCategories() []Category {
	switch m {
	case ModeDrugDrug, ModeDrugInfo, ModePatientTracker:
		return []Category{CategoryDrug}
	case ModeDrugFood:
		return []Category{CategoryDrug, CategoryFood}
	case ModeDrugComp:
		return []Category{CategoryDrug, CategoryComplementary}
	default:
		return nil
	}
}

// ParseCheckerMode parses a mode name. Underscores are accepted in place of dashes.
func ParseCheckerMode(s string) (CheckerMode, error) {
	m := CheckerMode(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-"))
	if !m.IsValid() {
		return "", fmt.Errorf("%w: unknown checker mode %q", ErrInvalidInput, s)
	}
	return m, nil
}

// Eligibility is the outcome of validating a selection against a mode.
type Eligibility struct {
	// Ready is true when a check may be issued.
	Ready bool

	// Reason explains what is missing. Empty when Ready.
	Reason string
}

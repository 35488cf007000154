package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCheckerMode_IsValid tests all valid and invalid checker modes
func TestCheckerMode_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		mode     CheckerMode
		expected bool
	}{
		{name: "drug-drug is valid", mode: ModeDrugDrug, expected: true},
		{name: "drug-food is valid", mode: ModeDrugFood, expected: true},
		{name: "drug-comp is valid", mode: ModeDrugComp, expected: true},
		{name: "drug-info is valid", mode: ModeDrugInfo, expected: true},
		{name: "patient-tracker is valid", mode: ModePatientTracker, expected: true},
		{name: "empty string is invalid", mode: CheckerMode(""), expected: false},
		{name: "unknown mode is invalid", mode: CheckerMode("food-food"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.mode.IsValid())
		})
	}
}

func TestCheckerMode_IsCheckMode(t *testing.T) {
	for _, m := range CheckModes() {
		assert.True(t, m.IsCheckMode(), m)
		assert.NotNil(t, m.Requirement(), m)
	}
	assert.False(t, ModeDrugInfo.IsCheckMode())
	assert.False(t, ModePatientTracker.IsCheckMode())
	assert.Nil(t, ModeDrugInfo.Requirement())
}

func TestCheckerMode_Requirement(t *testing.T) {
	assert.Equal(t, ModeRequirement{CategoryDrug: 2}, ModeDrugDrug.Requirement())
	assert.Equal(t, ModeRequirement{CategoryDrug: 1, CategoryFood: 1}, ModeDrugFood.Requirement())
	assert.Equal(t, ModeRequirement{CategoryDrug: 1, CategoryComplementary: 1}, ModeDrugComp.Requirement())
}

func TestCheckerMode_SearchCategories(t *testing.T) {
	assert.Equal(t, []Category{CategoryDrug}, ModeDrugDrug.SearchCategories())
	assert.Equal(t, []Category{CategoryDrug, CategoryFood}, ModeDrugFood.SearchCategories())
	assert.Equal(t, []Category{CategoryDrug, CategoryComplementary}, ModeDrugComp.SearchCategories())
}

func TestParseCheckerMode(t *testing.T) {
	m, err := ParseCheckerMode(" Drug_Food ")
	require.NoError(t, err)
	assert.Equal(t, ModeDrugFood, m)

	_, err = ParseCheckerMode("drug-everything")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCategory(t *testing.T) {
	tests := []struct {
		input      string
		expected   Category
		collection string
	}{
		{"drug", CategoryDrug, "medications"},
		{"medications", CategoryDrug, "medications"},
		{"Food", CategoryFood, "food_items"},
		{"comp", CategoryComplementary, "complementary_medicines"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseCategory(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
			assert.Equal(t, tt.collection, c.Collection())
			assert.True(t, c.IsValid())
		})
	}

	_, err := ParseCategory("mineral")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, Category("mineral").IsValid())
	assert.Empty(t, Category("mineral").Collection())
}

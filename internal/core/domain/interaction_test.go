package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityID_UnmarshalJSON(t *testing.T) {
	var v struct {
		A EntityID `json:"a"`
		B EntityID `json:"b"`
		C EntityID `json:"c"`
	}
	err := json.Unmarshal([]byte(`{"a": 42, "b": "x-7", "c": null}`), &v)
	require.NoError(t, err)
	assert.Equal(t, EntityID("42"), v.A)
	assert.Equal(t, EntityID("x-7"), v.B)
	assert.Equal(t, EntityID(""), v.C)
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input    string
		expected Severity
	}{
		{"Major", SeverityMajor},
		{"MAJOR", SeverityMajor},
		{" moderate ", SeverityModerate},
		{"minor", SeverityMinor},
		{"", SeverityUnknown},
		{"severe", SeverityUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseSeverity(tt.input))
		})
	}
}

func sampleResult() *InteractionCheckResult {
	return &InteractionCheckResult{
		DrugDrug: []DrugDrugInteraction{
			{
				ID: "1", Medication1ID: "1", Medication2ID: "2",
				Medication1Name: "Aspirin", Medication2Name: "Warfarin",
				Severity: "Major", Description: "Bleeding risk",
			},
		},
		DrugFood: []DrugFoodInteraction{
			{ID: "5", MedicationID: "2", FoodID: "9", MedicationName: "Warfarin", Severity: "moderate"},
		},
		DrugComplementary: []DrugComplementaryInteraction{
			{ID: "8", MedicationID: "1", CompID: "3", CompName: "Ginkgo", Severity: ""},
			{ID: "9", MedicationID: "1", CompID: "4", Severity: "MINOR"},
		},
	}
}

func TestInteractionCheckResult_SeverityCounts(t *testing.T) {
	counts := sampleResult().SeverityCounts()
	assert.Equal(t, SeverityCounts{Major: 1, Moderate: 1, Minor: 1, Unknown: 1}, counts)
}

func TestInteractionCheckResult_Total(t *testing.T) {
	assert.Equal(t, 4, sampleResult().Total())

	var nilResult *InteractionCheckResult
	assert.Equal(t, 0, nilResult.Total())
	assert.True(t, nilResult.IsEmpty())
}

func TestInteractionCheckResult_Unified(t *testing.T) {
	entries := sampleResult().Unified()
	require.Len(t, entries, 4)

	assert.Equal(t, KindDrugDrug, entries[0].Kind)
	assert.Equal(t, KindDrugFood, entries[1].Kind)
	assert.Equal(t, KindDrugComplementary, entries[2].Kind)
	assert.Equal(t, KindDrugComplementary, entries[3].Kind)

	assert.Equal(t, "Aspirin ↔ Warfarin", entries[0].DisplayTitle())
	assert.Equal(t, "Warfarin ↔ ID: 9", entries[1].DisplayTitle())
	assert.Equal(t, "ID: 1 ↔ Ginkgo", entries[2].DisplayTitle())
	assert.Equal(t, SeverityUnknown, entries[2].Level())
}

func TestInteractionCheckResult_EmptyDecode(t *testing.T) {
	var result InteractionCheckResult
	err := json.Unmarshal([]byte(`{"drug_drug": [], "drug_food": [], "drug_complementary": []}`), &result)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Total())
	assert.True(t, result.IsEmpty())
	assert.Equal(t, SeverityCounts{}, result.SeverityCounts())
}

func TestInteractionCheckResult_DecodeScenario(t *testing.T) {
	body := `{
		"drug_drug": [{"id": 1, "medication1_id": 1, "medication2_id": 2,
			"severity": "Major", "description": "Bleeding risk",
			"recommendation": "Avoid", "medication1_name": "Aspirin", "medication2_name": "Warfarin"}],
		"drug_food": [],
		"drug_complementary": []
	}`
	var result InteractionCheckResult
	require.NoError(t, json.Unmarshal([]byte(body), &result))

	assert.Equal(t, SeverityCounts{Major: 1}, result.SeverityCounts())
	assert.Equal(t, 1, result.Total())
	assert.Equal(t, "Aspirin ↔ Warfarin", result.Unified()[0].DisplayTitle())
	assert.Equal(t, EntityID("2"), result.DrugDrug[0].Medication2ID)
}

func TestCheckOutcome_NoInteractions(t *testing.T) {
	ok := CheckOutcome{State: CheckSuccess, Result: &InteractionCheckResult{}}
	assert.True(t, ok.NoInteractions())

	failed := CheckOutcome{State: CheckError, Message: "boom"}
	assert.False(t, failed.NoInteractions())

	found := CheckOutcome{State: CheckSuccess, Result: sampleResult()}
	assert.False(t, found.NoInteractions())
}

func TestNewHistoryEntry(t *testing.T) {
	o := CheckOutcome{
		Mode:    ModeDrugDrug,
		Request: InteractionCheckRequest{DrugIDs: []string{"1", "2"}},
		State:   CheckSuccess,
		Result:  sampleResult(),
	}
	entry := NewHistoryEntry(o)
	assert.Equal(t, 4, entry.Total)
	assert.Equal(t, 1, entry.Counts.Major)
	assert.Equal(t, ModeDrugDrug, entry.Mode)
}

func TestCheckState_String(t *testing.T) {
	assert.Equal(t, "idle", CheckIdle.String())
	assert.Equal(t, "pending", CheckPending.String())
	assert.Equal(t, "success", CheckSuccess.String())
	assert.Equal(t, "error", CheckError.String())
	assert.Equal(t, "unknown", CheckState(99).String())
}

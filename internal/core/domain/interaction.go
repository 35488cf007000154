package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// EntityID is a backend identifier. The backend emits ids as JSON numbers
// or strings; both decode to the same textual form.
type EntityID string

// UnmarshalJSON accepts a JSON string, number, or null.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = EntityID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = EntityID(n.String())
	return nil
}

// String returns the string representation.
func (id EntityID) String() string {
	return string(id)
}

// Severity is the qualitative risk level of an interaction.
type Severity string

// Known severities. Anything else is reported as SeverityUnknown.
const (
	SeverityMajor    Severity = "Major"
	SeverityModerate Severity = "Moderate"
	SeverityMinor    Severity = "Minor"
	SeverityUnknown  Severity = "Unknown"
)

// ParseSeverity matches s case-insensitively against the known levels.
func ParseSeverity(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major":
		return SeverityMajor
	case "moderate":
		return SeverityModerate
	case "minor":
		return SeverityMinor
	default:
		return SeverityUnknown
	}
}

// String returns the string representation.
func (s Severity) String() string {
	return string(s)
}

// DrugDrugInteraction is a row of the drug_drug result list.
type DrugDrugInteraction struct {
	ID              EntityID        `json:"id"`
	Medication1ID   EntityID        `json:"medication1_id"`
	Medication2ID   EntityID        `json:"medication2_id"`
	Medication1Name string          `json:"medication1_name,omitempty"`
	Medication2Name string          `json:"medication2_name,omitempty"`
	Severity        string          `json:"severity,omitempty"`
	Description     string          `json:"description"`
	Recommendation  string          `json:"recommendation"`
	Effects         json.RawMessage `json:"effects,omitempty"`
}

// DrugFoodInteraction is a row of the drug_food result list.
type DrugFoodInteraction struct {
	ID             EntityID        `json:"id"`
	MedicationID   EntityID        `json:"medication_id"`
	FoodID         EntityID        `json:"food_id"`
	MedicationName string          `json:"medication_name,omitempty"`
	FoodName       string          `json:"food_name,omitempty"`
	Severity       string          `json:"severity,omitempty"`
	Description    string          `json:"description"`
	Recommendation string          `json:"recommendation"`
	Effects        json.RawMessage `json:"effects,omitempty"`
}

// DrugComplementaryInteraction is a row of the drug_complementary result list.
type DrugComplementaryInteraction struct {
	ID             EntityID        `json:"id"`
	MedicationID   EntityID        `json:"medication_id"`
	CompID         EntityID        `json:"comp_id"`
	MedicationName string          `json:"medication_name,omitempty"`
	CompName       string          `json:"comp_name,omitempty"`
	Severity       string          `json:"severity,omitempty"`
	Description    string          `json:"description"`
	Recommendation string          `json:"recommendation"`
	Effects        json.RawMessage `json:"effects,omitempty"`
}

// InteractionCheckResult is the response envelope of a check. It is replaced
// wholesale on every check, never merged with a previous result.
type InteractionCheckResult struct {
	DrugDrug          []DrugDrugInteraction          `json:"drug_drug"`
	DrugFood          []DrugFoodInteraction          `json:"drug_food"`
	DrugComplementary []DrugComplementaryInteraction `json:"drug_complementary"`
}

// InteractionKind tags a unified entry with the list it came from.
type InteractionKind string

// Interaction kinds, in unified display order.
const (
	KindDrugDrug          InteractionKind = "drug_drug"
	KindDrugFood          InteractionKind = "drug_food"
	KindDrugComplementary InteractionKind = "drug_complementary"
)

// Label returns a short human-readable name.
func (k InteractionKind) Label() string {
	switch k {
	case KindDrugDrug:
		return "Drug-Drug"
	case KindDrugFood:
		return "Drug-Food"
	case KindDrugComplementary:
		return "Drug-Complementary"
	default:
		return unknownDescription
	}
}

// InteractionEntry is one interaction in the unified, category-tagged list.
type InteractionEntry struct {
	Kind           InteractionKind
	ID             EntityID
	LeftID         EntityID
	LeftName       string
	RightID        EntityID
	RightName      string
	Severity       string
	Description    string
	Recommendation string
	Effects        json.RawMessage
}

// Level returns the parsed severity. Missing or unrecognised values are
// SeverityUnknown and are shown with an "Unknown" badge.
func (e InteractionEntry) Level() Severity {
	return ParseSeverity(e.Severity)
}

// DisplayTitle builds "A ↔ B" from the resolved names, substituting
// "ID: <id>" for any missing name.
func (e InteractionEntry) DisplayTitle() string {
	return entityLabel(e.LeftName, e.LeftID) + " ↔ " + entityLabel(e.RightName, e.RightID)
}

// Breakdown parses the optional effects payload.
func (e InteractionEntry) Breakdown() EffectBreakdown {
	return ParseEffects(e.Effects)
}

func entityLabel(name string, id EntityID) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return idPlaceholder(string(id))
}

func idPlaceholder(id string) string {
	return "ID: " + id
}

// SeverityCounts tallies interactions by severity across all categories.
// Unknown counts the entries that matched none of the three levels and is
// not part of the named counts.
type SeverityCounts struct {
	Major    int `json:"major"`
	Moderate int `json:"moderate"`
	Minor    int `json:"minor"`
	Unknown  int `json:"unknown"`
}

// SeverityCounts counts Major, Moderate and Minor case-insensitively across
// drug_drug, drug_food and drug_complementary combined.
func (r *InteractionCheckResult) SeverityCounts() SeverityCounts {
	var c SeverityCounts
	for _, e := range r.Unified() {
		switch e.Level() {
		case SeverityMajor:
			c.Major++
		case SeverityModerate:
			c.Moderate++
		case SeverityMinor:
			c.Minor++
		default:
			c.Unknown++
		}
	}
	return c
}

// Total returns the number of interactions across the three lists.
func (r *InteractionCheckResult) Total() int {
	if r == nil {
		return 0
	}
	return len(r.DrugDrug) + len(r.DrugFood) + len(r.DrugComplementary)
}

// IsEmpty reports the "no known interactions found" state. It is a valid
// outcome of a successful check, not an error.
func (r *InteractionCheckResult) IsEmpty() bool {
	return r.Total() == 0
}

// Unified concatenates drug_drug, drug_food and drug_complementary, tagging
// each entry with its source list.
func (r *InteractionCheckResult) Unified() []InteractionEntry {
	if r == nil {
		return nil
	}
	entries := make([]InteractionEntry, 0, r.Total())
	for _, i := range r.DrugDrug {
		entries = append(entries, InteractionEntry{
			Kind:           KindDrugDrug,
			ID:             i.ID,
			LeftID:         i.Medication1ID,
			LeftName:       i.Medication1Name,
			RightID:        i.Medication2ID,
			RightName:      i.Medication2Name,
			Severity:       i.Severity,
			Description:    i.Description,
			Recommendation: i.Recommendation,
			Effects:        i.Effects,
		})
	}
	for _, i := range r.DrugFood {
		entries = append(entries, InteractionEntry{
			Kind:           KindDrugFood,
			ID:             i.ID,
			LeftID:         i.MedicationID,
			LeftName:       i.MedicationName,
			RightID:        i.FoodID,
			RightName:      i.FoodName,
			Severity:       i.Severity,
			Description:    i.Description,
			Recommendation: i.Recommendation,
			Effects:        i.Effects,
		})
	}
	for _, i := range r.DrugComplementary {
		entries = append(entries, InteractionEntry{
			Kind:           KindDrugComplementary,
			ID:             i.ID,
			LeftID:         i.MedicationID,
			LeftName:       i.MedicationName,
			RightID:        i.CompID,
			RightName:      i.CompName,
			Severity:       i.Severity,
			Description:    i.Description,
			Recommendation: i.Recommendation,
			Effects:        i.Effects,
		})
	}
	return entries
}

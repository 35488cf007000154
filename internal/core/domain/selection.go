package domain

import "strings"

// MinQueryLength is the shortest query text (in runes, after trimming)
// that is sent to the search index.
const MinQueryLength = 2

// CandidatePageSize caps the number of suggestions returned per query.
const CandidatePageSize = 10

// Candidate is a search suggestion for a category.
type Candidate struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// SelectedItem is an entity the user has added to the pending check set.
// IDs are unique within a category only: a food item and a medication may
// share a raw id.
type SelectedItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// ItemKey identifies a selected item within a selection.
type ItemKey struct {
	ID       string
	Category Category
}

// Key returns the identity used for deduplication.
func (i SelectedItem) Key() ItemKey {
	return ItemKey{ID: i.ID, Category: i.Category}
}

// Validate checks the item carries an id and a known category.
func (i SelectedItem) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return ErrInvalidInput
	}
	if !i.Category.IsValid() {
		return ErrInvalidInput
	}
	return nil
}

// Label returns the display name, falling back to an id placeholder.
func (i SelectedItem) Label() string {
	if i.Name != "" {
		return i.Name
	}
	return idPlaceholder(i.ID)
}

// FromCandidate builds a selected item from a search suggestion.
func FromCandidate(c Candidate, category Category) SelectedItem {
	return SelectedItem{ID: c.ID, Name: c.Label, Category: category}
}

// InteractionCheckRequest is the body of a check request: the selection
// partitioned by category. It is derived fresh for every check attempt.
type InteractionCheckRequest struct {
	DrugIDs []string `json:"drug_ids"`
	FoodIDs []string `json:"food_ids"`
	CompIDs []string `json:"comp_ids"`
}

// PartitionSelection splits items into per-category id lists, preserving
// selection order within each list. Lists are never nil so they encode as [].
func PartitionSelection(items []SelectedItem) InteractionCheckRequest {
	req := InteractionCheckRequest{
		DrugIDs: []string{},
		FoodIDs: []string{},
		CompIDs: []string{},
	}
	for _, item := range items {
		switch item.Category {
		case CategoryDrug:
			req.DrugIDs = append(req.DrugIDs, item.ID)
		case CategoryFood:
			req.FoodIDs = append(req.FoodIDs, item.ID)
		case CategoryComplementary:
			req.CompIDs = append(req.CompIDs, item.ID)
		}
	}
	return req
}

// Size returns the total number of ids in the request.
func (r InteractionCheckRequest) Size() int {
	return len(r.DrugIDs) + len(r.FoodIDs) + len(r.CompIDs)
}

package services

import (
	"fmt"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

// Selection is the ordered, deduplicated set of items chosen for the next
// check. No two items share an (id, category) pair.
//
// Selection is not safe for concurrent use; Panel serialises access.
type Selection struct {
	items []domain.SelectedItem
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Add appends item unless an item with the same id and category is present.
// A duplicate is ignored and reported as false with no error.
func (s *Selection) Add(item domain.SelectedItem) (bool, error) {
	if err := item.Validate(); err != nil {
		return false, fmt.Errorf("add %s %q: %w", item.Category, item.ID, err)
	}
	key := item.Key()
	for _, existing := range s.items {
		if existing.Key() == key {
			return false, nil
		}
	}
	s.items = append(s.items, item)
	return true, nil
}

// Remove deletes the item at index; later items shift down.
func (s *Selection) Remove(index int) error {
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("remove %d of %d: %w", index, len(s.items), domain.ErrInvalidIndex)
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	return nil
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.items = nil
}

// Items returns a copy of the selection in insertion order.
func (s *Selection) Items() []domain.SelectedItem {
	out := make([]domain.SelectedItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of selected items.
func (s *Selection) Len() int {
	return len(s.items)
}

// Count returns the number of selected items of a category.
func (s *Selection) Count(category domain.Category) int {
	return countCategory(s.items, category)
}

// Partition builds the check request from the current selection.
func (s *Selection) Partition() domain.InteractionCheckRequest {
	return domain.PartitionSelection(s.items)
}

func countCategory(items []domain.SelectedItem, category domain.Category) int {
	n := 0
	for _, item := range items {
		if item.Category == category {
			n++
		}
	}
	return n
}

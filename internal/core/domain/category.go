package domain

import (
	"fmt"
	"strings"
)

// Category is the type tag of a selectable entity.
type Category string

// Available categories. The set is closed: every switch over Category in
// this module handles all three.
const (
	// CategoryDrug is a medication.
	CategoryDrug Category = "drug"

	// CategoryFood is a food item.
	CategoryFood Category = "food"

	// CategoryComplementary is a complementary medicine.
	CategoryComplementary Category = "complementary"
)

// AllCategories returns every category in display order.
func AllCategories() []Category {
	return []Category{CategoryDrug, CategoryFood, CategoryComplementary}
}

// IsValid returns true if the category is recognised.
func (c Category) IsValid() bool {
	switch c {
	case CategoryDrug, CategoryFood, CategoryComplementary:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (c Category) String() string {
	return string(c)
}

// Collection returns the search index collection holding entities of this category.
func (c Category) Collection() string {
	switch c {
	case CategoryDrug:
		return "medications"
	case CategoryFood:
		return "food_items"
	case CategoryComplementary:
		return "complementary_medicines"
	default:
		return ""
	}
}

// Noun returns the singular, human-readable name used in messages.
func (c Category) Noun() string {
	switch c {
	case CategoryDrug:
		return "medication"
	case CategoryFood:
		return "food item"
	case CategoryComplementary:
		return "complementary medicine"
	default:
		return unknownDescription
	}
}

// ParseCategory accepts the canonical names plus the collection names and a
// few common aliases ("medication", "comp").
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "drug", "drugs", "medication", "medications":
		return CategoryDrug, nil
	case "food", "foods", "food_item", "food_items":
		return CategoryFood, nil
	case "complementary", "comp", "complementary_medicine", "complementary_medicines":
		return CategoryComplementary, nil
	default:
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidInput, s)
	}
}

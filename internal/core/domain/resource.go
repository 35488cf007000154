package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Resource is an administrable REST collection on the backend.
type Resource string

// Available resources.
const (
	ResourceMedications                   Resource = "medications"
	ResourceAllergies                     Resource = "allergies"
	ResourceFoodItems                     Resource = "food_items"
	ResourceComplementaryMedicines        Resource = "complementary_medicines"
	ResourceSchedules                     Resource = "schedules"
	ResourceReferences                    Resource = "references"
	ResourceUsers                         Resource = "users"
	ResourceDrugDrugInteractions          Resource = "drug_drug_interactions"
	ResourceDrugFoodInteractions          Resource = "drug_food_interactions"
	ResourceDrugComplementaryInteractions Resource = "drug_complementary_interactions"
)

// resourceField describes one writable field of a resource.
type resourceField struct {
	name     string
	required bool
}

var resourceFields = map[Resource][]resourceField{
	ResourceMedications: {
		{"name", true}, {"generic_name", false}, {"drug_class", false},
		{"dosage_form", false}, {"description", false},
	},
	ResourceAllergies: {
		{"name", true}, {"severity", false}, {"description", false},
	},
	ResourceFoodItems: {
		{"name", true}, {"category", false}, {"description", false},
	},
	ResourceComplementaryMedicines: {
		{"name", true}, {"common_uses", false}, {"description", false},
	},
	ResourceSchedules: {
		{"user_id", true}, {"medication_id", true}, {"dosage", true},
		{"frequency", true}, {"start_date", false}, {"end_date", false}, {"notes", false},
	},
	ResourceReferences: {
		{"title", true}, {"url", false}, {"source", false}, {"published_year", false},
	},
	ResourceUsers: {
		{"username", true}, {"email", true}, {"password", false}, {"is_admin", false},
	},
	ResourceDrugDrugInteractions: {
		{"medication1_id", true}, {"medication2_id", true}, {"severity", true},
		{"description", true}, {"recommendation", false}, {"effects", false},
	},
	ResourceDrugFoodInteractions: {
		{"medication_id", true}, {"food_id", true}, {"severity", true},
		{"description", true}, {"recommendation", false}, {"effects", false},
	},
	ResourceDrugComplementaryInteractions: {
		{"medication_id", true}, {"comp_id", true}, {"severity", true},
		{"description", true}, {"recommendation", false}, {"effects", false},
	},
}

// AllResources returns every resource sorted by name.
func AllResources() []Resource {
	out := make([]Resource, 0, len(resourceFields))
	for r := range resourceFields {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsValid returns true if the resource is recognised.
func (r Resource) IsValid() bool {
	_, ok := resourceFields[r]
	return ok
}

// String returns the string representation.
func (r Resource) String() string {
	return string(r)
}

// Path returns the REST collection path, e.g. "/food_items".
func (r Resource) Path() string {
	return "/" + string(r)
}

// Fields returns the writable field names in declaration order.
func (r Resource) Fields() []string {
	fields := resourceFields[r]
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.name
	}
	return out
}

// RequiredFields returns the fields a create request must carry.
func (r Resource) RequiredFields() []string {
	var out []string
	for _, f := range resourceFields[r] {
		if f.required {
			out = append(out, f.name)
		}
	}
	return out
}

// ParseResource parses a resource name; dashes are accepted for underscores.
func ParseResource(s string) (Resource, error) {
	r := Resource(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !r.IsValid() {
		return "", fmt.Errorf("%w: unknown resource %q", ErrInvalidInput, s)
	}
	return r, nil
}

// Record is a resource row as exchanged with the backend.
type Record map[string]any

// ID returns the record's id as text.
func (r Record) ID() string {
	v, ok := r["id"]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return fmt.Sprint(t)
	}
}

// ValidateRecord checks that rec only carries writable fields of r and,
// when creating, that every required field is present and non-empty.
func ValidateRecord(r Resource, rec Record, create bool) error {
	if !r.IsValid() {
		return fmt.Errorf("%w: unknown resource %q", ErrInvalidInput, r)
	}
	allowed := make(map[string]bool)
	for _, f := range r.Fields() {
		allowed[f] = true
	}
	var unknown []string
	for k := range rec {
		if !allowed[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: unknown fields for %s: %s", ErrInvalidInput, r, strings.Join(unknown, ", "))
	}
	if len(rec) == 0 {
		return fmt.Errorf("%w: no fields given", ErrInvalidInput)
	}
	if !create {
		return nil
	}
	var missing []string
	for _, f := range r.RequiredFields() {
		v, ok := rec[f]
		if !ok || v == nil || fmt.Sprint(v) == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields for %s: %s", ErrInvalidInput, r, strings.Join(missing, ", "))
	}
	return nil
}

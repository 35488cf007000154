package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// EffectItem is one line of an effect breakdown.
type EffectItem struct {
	Label string
	Value string
}

// EffectBreakdown is the parsed form of an interaction's optional effects
// payload. When the payload cannot be parsed, Structured is false and Raw
// holds the text to show as-is.
type EffectBreakdown struct {
	Items      []EffectItem
	Raw        string
	Structured bool
}

// IsZero returns true when there is nothing to display.
func (b EffectBreakdown) IsZero() bool {
	return len(b.Items) == 0 && b.Raw == ""
}

// Lines flattens the breakdown into display lines, one per item, or the
// raw text as a single line when it is unstructured.
func (b EffectBreakdown) Lines() []string {
	if b.IsZero() {
		return nil
	}
	if !b.Structured {
		return []string{b.Raw}
	}
	lines := make([]string, 0, len(b.Items))
	for _, item := range b.Items {
		if item.Label == "" {
			lines = append(lines, item.Value)
			continue
		}
		lines = append(lines, item.Label+": "+item.Value)
	}
	return lines
}

// ParseEffects decodes an effects payload. The backend stores breakdowns as
// JSON-encoded strings, so the payload may be a JSON object or array, a JSON
// string wrapping one, or free text. Parsing never fails: anything it cannot
// interpret degrades to the raw text.
func ParseEffects(raw json.RawMessage) EffectBreakdown {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return EffectBreakdown{}
	}

	// Unwrap a JSON string; its content may itself be JSON.
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return EffectBreakdown{Raw: string(data)}
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return EffectBreakdown{}
		}
		if !strings.HasPrefix(s, "{") && !strings.HasPrefix(s, "[") {
			return EffectBreakdown{Raw: s}
		}
		data = []byte(s)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return EffectBreakdown{Raw: string(data)}
	}

	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		items := make([]EffectItem, 0, len(keys))
		for _, k := range keys {
			items = append(items, EffectItem{Label: k, Value: scalarText(t[k])})
		}
		return EffectBreakdown{Items: items, Raw: string(data), Structured: true}
	case []any:
		items := make([]EffectItem, 0, len(t))
		for _, el := range t {
			items = append(items, effectItem(el))
		}
		return EffectBreakdown{Items: items, Raw: string(data), Structured: true}
	default:
		return EffectBreakdown{Raw: scalarText(t)}
	}
}

func effectItem(v any) EffectItem {
	obj, ok := v.(map[string]any)
	if !ok {
		return EffectItem{Value: scalarText(v)}
	}
	return EffectItem{
		Label: firstString(obj, "name", "effect", "label", "type"),
		Value: firstString(obj, "description", "severity", "value", "level"),
	}
}

func firstString(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return scalarText(v)
		}
	}
	return ""
}

func scalarText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64, bool:
		return fmt.Sprint(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

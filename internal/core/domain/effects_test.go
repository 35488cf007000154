package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEffects(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		structured bool
		items      []EffectItem
		rawText    string
	}{
		{
			name: "empty payload",
			raw:  "",
		},
		{
			name: "null payload",
			raw:  "null",
		},
		{
			name:       "object sorted by key",
			raw:        `{"renal": "moderate", "bleeding": "major"}`,
			structured: true,
			items: []EffectItem{
				{Label: "bleeding", Value: "major"},
				{Label: "renal", Value: "moderate"},
			},
		},
		{
			name:       "json encoded string wrapping an array",
			raw:        `"[{\"effect\": \"QT prolongation\", \"severity\": \"Major\"}, \"dizziness\"]"`,
			structured: true,
			items: []EffectItem{
				{Label: "QT prolongation", Value: "Major"},
				{Value: "dizziness"},
			},
		},
		{
			name:    "plain string",
			raw:     `"increased drowsiness"`,
			rawText: "increased drowsiness",
		},
		{
			name:    "malformed json inside a string degrades to raw text",
			raw:     `"{\"bleeding\": "`,
			rawText: `{"bleeding": `,
		},
		{
			name:    "number",
			raw:     `3`,
			rawText: "3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ParseEffects(json.RawMessage(tt.raw))
			assert.Equal(t, tt.structured, b.Structured)
			if tt.items != nil {
				assert.Equal(t, tt.items, b.Items)
			}
			if !tt.structured {
				assert.Equal(t, tt.rawText, b.Raw)
			}
		})
	}
}

func TestEffectBreakdown_IsZero(t *testing.T) {
	assert.True(t, ParseEffects(nil).IsZero())
	assert.False(t, ParseEffects(json.RawMessage(`"text"`)).IsZero())
}

func TestEffectBreakdown_Lines(t *testing.T) {
	assert.Nil(t, EffectBreakdown{}.Lines())
	assert.Equal(t, []string{"raw text"}, EffectBreakdown{Raw: "raw text"}.Lines())
	assert.Equal(t, []string{"a: b", "c"}, EffectBreakdown{
		Structured: true,
		Items:      []EffectItem{{Label: "a", Value: "b"}, {Value: "c"}},
	}.Lines())
	assert.Equal(t, []string{"onset: rapid", "risk: high"},
		ParseEffects(json.RawMessage(`"{\"risk\":\"high\",\"onset\":\"rapid\"}"`)).Lines())
}

func TestInteractionEntry_Breakdown(t *testing.T) {
	e := InteractionEntry{Effects: json.RawMessage(`{"bleeding": "major"}`)}
	b := e.Breakdown()
	assert.True(t, b.Structured)
	assert.Len(t, b.Items, 1)
}

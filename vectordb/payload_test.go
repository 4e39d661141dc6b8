package vectordb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayloadID_Precedence(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		want    string
	}{
		{"recipe_id wins over id", map[string]any{"recipe_id": "potato_1", "id": "other"}, "potato_1"},
		{"id fallback", map[string]any{"id": "potato_1"}, "potato_1"},
		{"integer id", map[string]any{"id": int64(42)}, "42"},
		{"json number id", map[string]any{"id": float64(42)}, "42"},
		{"absent", map[string]any{"category": "soup"}, ""},
		{"nil payload", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PayloadID(tt.payload))
		})
	}
}

func TestPayloadName_Precedence(t *testing.T) {
	assert.Equal(t, "Борщ", PayloadName(map[string]any{"recipe_name": "Борщ", "name": "borscht"}))
	assert.Equal(t, "borscht", PayloadName(map[string]any{"name": "borscht"}))
	assert.Equal(t, "", PayloadName(map[string]any{}))
}

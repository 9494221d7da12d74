package datautil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeepCloneNestedStructure(t *testing.T) {
	original := map[string]any{
		"name": "annual leave",
		"days": 5.0,
		"tags": []any{"paid", "approved"},
		"nested": map[string]any{
			"created": time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			"ids":     []any{1.0, 2.0, 3.0},
		},
	}

	cloned := DeepClone(original)
	assert.Equal(t, original, cloned)

	clonedMap, ok := cloned.(map[string]any)
	require.True(t, ok)

	// mutating the clone must not touch the original
	clonedMap["name"] = "sick leave"
	clonedMap["tags"].([]any)[0] = "unpaid"
	clonedMap["nested"].(map[string]any)["ids"].([]any)[0] = 99.0

	assert.Equal(t, "annual leave", original["name"])
	assert.Equal(t, "paid", original["tags"].([]any)[0])
	assert.Equal(t, 1.0, original["nested"].(map[string]any)["ids"].([]any)[0])
}

func TestDeepCloneScalars(t *testing.T) {
	assert.Nil(t, DeepClone(nil))
	assert.Equal(t, 42, DeepClone(42))
	assert.Equal(t, "text", DeepClone("text"))

	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, ts, DeepClone(ts))
}

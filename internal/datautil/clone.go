package datautil

import "time"

// DeepClone copies a JSON-compatible value: nested maps, slices and times
// are duplicated, scalars returned as-is. The result is deeply equal to
// but shares no mutable structure with the input.
func DeepClone(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		return v
	case map[string]any:
		clone := make(map[string]any, len(v))
		for key, item := range v {
			clone[key] = DeepClone(item)
		}
		return clone
	case []any:
		clone := make([]any, len(v))
		for i, item := range v {
			clone[i] = DeepClone(item)
		}
		return clone
	default:
		return v
	}
}

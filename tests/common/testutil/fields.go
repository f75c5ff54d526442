//go:build unit || e2e

package testutil

// Field sets or, with a nil value, removes a top-level key of a request body map.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
	}
}

// Nested does the same for a key inside the object stored under parent,
// e.g. Nested("origin", "lat", 91.0) or Nested("cargo", "weight_kg", nil).
func Nested(parent, key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		obj, ok := m[parent].(map[string]any)
		if !ok {
			return
		}
		Field(key, value)(obj)
	}
}

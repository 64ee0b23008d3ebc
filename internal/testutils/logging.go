package testutils

// TestingT is the slice of *testing.T the helpers need. Kept narrow so the
// failure reporting itself can be exercised with a fake.
type TestingT interface {
	Errorf(format string, args ...any)
}

// FieldsToMap folds a variadic key-value field list, as passed to the
// structured logger, into a map for assertions. Malformed entries (dangling
// key, non-string key) are reported through t and skipped.
func FieldsToMap(t TestingT, fields []any) map[string]any {
	out := make(map[string]any, len(fields)/2)

	for i := 0; i < len(fields); i += 2 {
		if i+1 >= len(fields) {
			t.Errorf("Field list ends with dangling key %v at index %d", fields[i], i)
			continue
		}
		key, ok := fields[i].(string)
		if !ok {
			t.Errorf("Field key at index %d is %T, want string", i, fields[i])
			continue
		}
		out[key] = fields[i+1]
	}
	return out
}

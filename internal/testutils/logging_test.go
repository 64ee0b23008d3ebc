package testutils

import (
	"fmt"
	"testing"
)

func TestFieldsToMap(t *testing.T) {
	tests := []struct {
		name     string
		fields   []any
		expected map[string]any
	}{
		{
			name:     "empty fields",
			fields:   []any{},
			expected: map[string]any{},
		},
		{
			name:     "single pair",
			fields:   []any{"tag", "Writing"},
			expected: map[string]any{"tag": "Writing"},
		},
		{
			name:     "multiple pairs",
			fields:   []any{"phase", "work", "remaining", 1500, "locked", true},
			expected: map[string]any{"phase": "work", "remaining": 1500, "locked": true},
		},
		{
			name:     "mixed value types",
			fields:   []any{"date", "2026-08-30", "combo", 3, "rate", 0.5, "auto", false},
			expected: map[string]any{"date": "2026-08-30", "combo": 3, "rate": 0.5, "auto": false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FieldsToMap(t, tt.fields)

			if len(result) != len(tt.expected) {
				t.Errorf("Expected map length %d, got %d", len(tt.expected), len(result))
			}
			for key, want := range tt.expected {
				got, exists := result[key]
				if !exists {
					t.Errorf("Expected key %q in result", key)
					continue
				}
				if got != want {
					t.Errorf("Key %q: expected %v, got %v", key, want, got)
				}
			}
		})
	}
}

func TestFieldsToMap_MalformedInput(t *testing.T) {
	var reported []string
	fake := &fakeTestingT{report: func(msg string) {
		reported = append(reported, msg)
	}}

	t.Run("dangling key", func(t *testing.T) {
		reported = nil

		result := FieldsToMap(fake, []any{"phase", "work", "orphan"})

		if len(result) != 1 || result["phase"] != "work" {
			t.Errorf("Expected only the complete pair, got %v", result)
		}
		if len(reported) != 1 {
			t.Errorf("Expected 1 reported failure, got %d", len(reported))
		}
	})

	t.Run("non-string key", func(t *testing.T) {
		reported = nil

		result := FieldsToMap(fake, []any{42, "dropped", "tag", "Reading"})

		if len(result) != 1 || result["tag"] != "Reading" {
			t.Errorf("Expected only the valid pair, got %v", result)
		}
		if len(reported) != 1 {
			t.Errorf("Expected 1 reported failure, got %d", len(reported))
		}
	})
}

// fakeTestingT captures failures so malformed-input handling is observable.
type fakeTestingT struct {
	report func(msg string)
}

func (f *fakeTestingT) Errorf(format string, args ...any) {
	if f.report != nil {
		f.report(fmt.Sprintf(format, args...))
	}
}

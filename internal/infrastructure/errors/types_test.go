package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestAppError_ErrorFormat(t *testing.T) {
	t.Parallel()

	err := NewAppErrorWithContext("store.Save",
		errors.New("disk full"),
		ErrCodeStore,
		map[string]string{"path": "/tmp/data.json"})

	msg := err.Error()
	if !strings.Contains(msg, "disk full") {
		t.Errorf("Expected the underlying message, got %q", msg)
	}
	if !strings.Contains(msg, "op=store.Save") {
		t.Errorf("Expected the op token, got %q", msg)
	}
	if !strings.Contains(msg, "code=STORE") {
		t.Errorf("Expected the code token, got %q", msg)
	}
	if !strings.Contains(msg, "path=/tmp/data.json") {
		t.Errorf("Expected the context token, got %q", msg)
	}
}

func TestAppError_ContextOrderDeterministic(t *testing.T) {
	t.Parallel()

	err := NewAppErrorWithContext("op", errors.New("x"), ErrCodeStore,
		map[string]string{"b": "2", "a": "1", "c": "3"})

	first := err.Error()
	for i := 0; i < 10; i++ {
		if err.Error() != first {
			t.Fatal("Error() output is not deterministic")
		}
	}
	if strings.Index(first, "a=1") > strings.Index(first, "b=2") {
		t.Errorf("Expected sorted context keys, got %q", first)
	}
}

func TestAppError_UnwrapAndIs(t *testing.T) {
	t.Parallel()

	root := errors.New("root cause")
	err := NewAppError("op", root, ErrCodeKillFailed)

	if !errors.Is(err, root) {
		t.Error("Expected errors.Is to find the root cause")
	}
	if errors.Unwrap(err) != root {
		t.Error("Expected Unwrap to return the root cause")
	}

	// Two AppErrors match on code.
	other := NewAppError("elsewhere", errors.New("different"), ErrCodeKillFailed)
	if !errors.Is(err, other) {
		t.Error("Expected AppErrors with equal codes to match")
	}
}

func TestClassifiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		matcher func(error) bool
	}{
		{"validation", NewValidationError("op", "field", "reason"), IsValidation},
		{"blacklist locked", NewAppError("op", errors.New("x"), ErrCodeBlacklistLocked), IsBlacklistLocked},
		{"store", NewAppError("op", errors.New("x"), ErrCodeStore), IsStore},
		{"kill failed", NewAppError("op", errors.New("x"), ErrCodeKillFailed), IsKillFailed},
		{"permission", NewAppError("op", errors.New("x"), ErrCodePermission), IsPermission},
		{"not found", NewAppError("op", errors.New("x"), ErrCodeNotFound), IsNotFound},
		{"unsupported", NewAppError("op", errors.New("x"), ErrCodeUnsupported), IsUnsupported},
		{"invariant", NewAppError("op", errors.New("x"), ErrCodeInvariant), IsInvariant},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !tt.matcher(tt.err) {
				t.Error("Expected the classifier to match its own code")
			}
			if tt.matcher(errors.New("plain")) {
				t.Error("Expected the classifier to reject a plain error")
			}
		})
	}
}

func TestClassifiers_MatchWrappedErrors(t *testing.T) {
	t.Parallel()

	inner := NewValidationError("op", "field", "reason")
	wrapped := fmt.Errorf("saving settings: %w", inner)

	if !IsValidation(wrapped) {
		t.Error("Expected errors.As to find the inner validation error")
	}
}

func TestNewValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("ValidateSettings", "pomodoro", "work duration must be 1-60 minutes")
	if err.Code != ErrCodeValidation {
		t.Errorf("Expected validation code, got %v", err.Code)
	}
	if err.Context["field"] != "pomodoro" {
		t.Errorf("Expected the field in context, got %v", err.Context)
	}
	if !strings.Contains(err.Error(), "invalid pomodoro") {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestClassifyStoreError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, ErrCodeUnknown},
		{"not exist", fs.ErrNotExist, ErrCodeNotFound},
		{"permission", fs.ErrPermission, ErrCodePermission},
		{"permission string", errors.New("open /x: permission denied"), ErrCodePermission},
		{"windows access denied", errors.New("open C:\\x: Access is denied."), ErrCodePermission},
		{"json syntax", errors.New("invalid character 'x' looking for beginning of value"), ErrCodeStore},
		{"anything else", errors.New("weird failure"), ErrCodeStore},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ClassifyStoreError(tt.err); got != tt.want {
				t.Errorf("ClassifyStoreError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestWithContext(t *testing.T) {
	t.Parallel()

	err := NewAppError("op", errors.New("x"), ErrCodeStore).
		WithContext("path", "/tmp/data.json").
		WithContext("attempt", "2")

	if err.Context["path"] != "/tmp/data.json" || err.Context["attempt"] != "2" {
		t.Errorf("Unexpected context: %v", err.Context)
	}
}

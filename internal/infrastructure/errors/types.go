package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrorCode classifies application errors so callers can branch on the
// category instead of matching message strings.
type ErrorCode int

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeValidation
	ErrCodeBlacklistLocked
	ErrCodeStore
	ErrCodeKillFailed
	ErrCodePermission
	ErrCodeNotFound
	ErrCodeUnsupported
	ErrCodeInvariant
)

// String returns a string representation of the error code.
func (e ErrorCode) String() string {
	switch e {
	case ErrCodeValidation:
		return "VALIDATION"
	case ErrCodeBlacklistLocked:
		return "BLACKLIST_LOCKED"
	case ErrCodeStore:
		return "STORE"
	case ErrCodeKillFailed:
		return "KILL_FAILED"
	case ErrCodePermission:
		return "PERMISSION"
	case ErrCodeNotFound:
		return "NOT_FOUND"
	case ErrCodeUnsupported:
		return "UNSUPPORTED"
	case ErrCodeInvariant:
		return "INVARIANT"
	default:
		return "UNKNOWN"
	}
}

// AppError is the application-wide error type carrying the failing operation,
// a classification code and optional context for logging.
type AppError struct {
	Op        string            // operation name
	Err       error             // underlying error
	Code      ErrorCode         // error classification
	Context   map[string]string // additional context information
	Timestamp time.Time         // when the error occurred
}

func (e *AppError) Error() string {
	// Guard against nil receiver
	if e == nil {
		return "application error"
	}

	var parts []string

	if e.Op != "" {
		parts = append(parts, fmt.Sprintf("op=%s", e.Op))
	}

	if e.Code != ErrCodeUnknown {
		parts = append(parts, fmt.Sprintf("code=%s", e.Code.String()))
	}

	// Add context with deterministic order (treat nil Context as empty)
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", k, e.Context[k]))
		}
	}

	contextStr := ""
	if len(parts) > 0 {
		contextStr = fmt.Sprintf(" [%s]", strings.Join(parts, " "))
	}

	if e.Err != nil {
		return e.Err.Error() + contextStr
	}
	return "application error" + contextStr
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is implements error matching for errors.Is
func (e *AppError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*AppError); ok {
		return e.Code == t.Code
	}
	// Also check if the target matches the underlying/wrapped error
	if e.Err != nil {
		return errors.Is(e.Err, target)
	}
	return false
}

// GetCode returns the error code as a string (for logging interface compatibility)
func (e *AppError) GetCode() string {
	if e == nil {
		return ErrCodeUnknown.String()
	}
	return e.Code.String()
}

// GetContext returns the error context (for logging interface compatibility)
func (e *AppError) GetContext() map[string]string {
	if e == nil || e.Context == nil {
		return make(map[string]string)
	}
	return e.Context
}

// GetTimestamp returns the error timestamp (for logging interface compatibility)
func (e *AppError) GetTimestamp() time.Time {
	if e == nil {
		return time.Time{}
	}
	return e.Timestamp
}

// WithContext adds context information to the error by mutating the receiver.
// Not safe after the error has been published to other goroutines; use
// NewAppErrorWithContext for concurrent construction instead.
func (e *AppError) WithContext(key, value string) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error with the given parameters
func NewAppError(op string, err error, code ErrorCode) *AppError {
	return &AppError{
		Op:        op,
		Err:       err,
		Code:      code,
		Context:   make(map[string]string),
		Timestamp: time.Now(),
	}
}

// NewAppErrorWithContext creates a new application error with additional context
func NewAppErrorWithContext(op string, err error, code ErrorCode, context map[string]string) *AppError {
	appErr := NewAppError(op, err, code)
	if context != nil {
		// Clone the context map to avoid external mutation and data races
		appErr.Context = make(map[string]string, len(context))
		for k, v := range context {
			appErr.Context[k] = v
		}
	}
	return appErr
}

// NewValidationError creates a validation error with a field-level reason.
func NewValidationError(op, field, reason string) *AppError {
	return NewAppErrorWithContext(op,
		fmt.Errorf("invalid %s: %s", field, reason),
		ErrCodeValidation,
		map[string]string{"field": field})
}

// Error classification functions

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == ErrCodeValidation
	}
	return false
}

// IsBlacklistLocked checks if the error is a declined blacklist removal
func IsBlacklistLocked(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == ErrCodeBlacklistLocked
	}
	return false
}

// IsStore checks if the error is a persistence error
func IsStore(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == ErrCodeStore
	}
	return false
}

// IsKillFailed checks if the error is a process termination failure
func IsKillFailed(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == ErrCodeKillFailed
	}
	return false
}

// IsPermission checks if the error is a privilege failure
func IsPermission(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == ErrCodePermission
	}
	return false
}

// IsNotFound checks if the error is a "not found" error
func IsNotFound(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == ErrCodeNotFound
	}
	return false
}

// IsUnsupported checks if the error is a platform-support error
func IsUnsupported(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == ErrCodeUnsupported
	}
	return false
}

// IsInvariant checks if the error indicates corrupted internal state. These
// are programming defects, never recoverable runtime conditions.
func IsInvariant(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == ErrCodeInvariant
	}
	return false
}

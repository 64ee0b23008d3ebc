package errors

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

// ClassifyStoreError classifies filesystem and codec errors raised by the
// persistence store into application error codes.
func ClassifyStoreError(err error) ErrorCode {
	if err == nil {
		return ErrCodeUnknown
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrCodeNotFound
	case errors.Is(err, fs.ErrPermission), errors.Is(err, os.ErrPermission):
		return ErrCodePermission
	}

	// Fall back to string-based classification for wrapped platform errors
	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "permission denied"):
		return ErrCodePermission
	case strings.Contains(errStr, "access is denied"):
		return ErrCodePermission
	case strings.Contains(errStr, "no such file"):
		return ErrCodeNotFound
	case strings.Contains(errStr, "invalid character"),
		strings.Contains(errStr, "unexpected end of json"),
		strings.Contains(errStr, "cannot unmarshal"):
		return ErrCodeStore
	default:
		return ErrCodeStore
	}
}

// HandleStoreError wraps a low-level store failure with operation context.
func HandleStoreError(op string, err error) *AppError {
	return NewAppError(op, err, ClassifyStoreError(err))
}

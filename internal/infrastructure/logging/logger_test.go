package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"tomatoclock/internal/testutils"
)

// Mock CodedError for testing
type mockCodedError struct {
	message   string
	code      string
	context   map[string]string
	timestamp time.Time
}

func (m *mockCodedError) Error() string {
	return m.message
}

func (m *mockCodedError) GetCode() string {
	return m.code
}

func (m *mockCodedError) GetContext() map[string]string {
	return m.context
}

func (m *mockCodedError) GetTimestamp() time.Time {
	return m.timestamp
}

// Mock Logger for testing
type mockLogger struct {
	debugCalls []logCall
	infoCalls  []logCall
	warnCalls  []logCall
	errorCalls []logCall
}

type logCall struct {
	msg    string
	fields []interface{}
}

func (m *mockLogger) Debug(msg string, fields ...interface{}) {
	m.debugCalls = append(m.debugCalls, logCall{msg: msg, fields: fields})
}

func (m *mockLogger) Info(msg string, fields ...interface{}) {
	m.infoCalls = append(m.infoCalls, logCall{msg: msg, fields: fields})
}

func (m *mockLogger) Warn(msg string, fields ...interface{}) {
	m.warnCalls = append(m.warnCalls, logCall{msg: msg, fields: fields})
}

func (m *mockLogger) Error(msg string, fields ...interface{}) {
	m.errorCalls = append(m.errorCalls, logCall{msg: msg, fields: fields})
}

func TestNewDefaultLogger(t *testing.T) {
	logger := NewDefaultLogger()
	if logger == nil {
		t.Fatal("NewDefaultLogger() returned nil")
	}

	if _, ok := logger.(*DefaultLogger); !ok {
		t.Errorf("NewDefaultLogger() returned %T, expected *DefaultLogger", logger)
	}
}

func TestDefaultLogger_LogLevels(t *testing.T) {
	// Capture current log state
	originalOutput := log.Writer()
	originalFlags := log.Flags()
	originalPrefix := log.Prefix()

	// Capture log output
	var buf bytes.Buffer
	log.SetOutput(&buf)

	// Restore original state after test
	t.Cleanup(func() {
		log.SetOutput(originalOutput)
		log.SetFlags(originalFlags)
		log.SetPrefix(originalPrefix)
	})

	logger := &DefaultLogger{}

	tests := []struct {
		name           string
		logFunc        func(string, ...interface{})
		message        string
		fields         []interface{}
		levelToken     string
		expectedMsg    string
		expectedFields map[string]interface{}
	}{
		{
			name:           "Debug",
			logFunc:        logger.Debug,
			message:        "debug message",
			fields:         []interface{}{"key", "value"},
			levelToken:     "DEBUG",
			expectedMsg:    "debug message",
			expectedFields: map[string]interface{}{"key": "value"},
		},
		{
			name:           "Info",
			logFunc:        logger.Info,
			message:        "info message",
			fields:         []interface{}{"count", 42},
			levelToken:     "INFO",
			expectedMsg:    "info message",
			expectedFields: map[string]interface{}{"count": float64(42)}, // JSON numbers are float64
		},
		{
			name:           "Warn",
			logFunc:        logger.Warn,
			message:        "warn message",
			fields:         []interface{}{},
			levelToken:     "WARN",
			expectedMsg:    "warn message",
			expectedFields: map[string]interface{}{},
		},
		{
			name:           "Error",
			logFunc:        logger.Error,
			message:        "error message",
			fields:         []interface{}{"error", "test error"},
			levelToken:     "ERROR",
			expectedMsg:    "error message",
			expectedFields: map[string]interface{}{"error": "test error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.logFunc(tt.message, tt.fields...)

			output := strings.TrimSpace(buf.String())

			// Find the JSON part (skip timestamp prefix if any)
			jsonStart := strings.Index(output, "{")
			if jsonStart == -1 {
				t.Fatalf("Expected JSON output, got: %q", output)
			}
			jsonPart := output[jsonStart:]

			// Parse JSON
			var logEntry map[string]interface{}
			if err := json.Unmarshal([]byte(jsonPart), &logEntry); err != nil {
				t.Fatalf("Failed to parse JSON log entry: %v, output: %q", err, output)
			}

			// Check required fields exist
			if logEntry["timestamp"] == nil {
				t.Error("Expected log entry to have timestamp field")
			}

			if logEntry["level"] != tt.levelToken {
				t.Errorf("Expected level %q, got %q", tt.levelToken, logEntry["level"])
			}

			if logEntry["message"] != tt.expectedMsg {
				t.Errorf("Expected message %q, got %q", tt.expectedMsg, logEntry["message"])
			}

			// Check fields
			fields, ok := logEntry["fields"].(map[string]interface{})
			if !ok {
				t.Fatalf("Expected fields to be a map, got %T", logEntry["fields"])
			}

			for key, expectedValue := range tt.expectedFields {
				actualValue, exists := fields[key]
				if !exists {
					t.Errorf("Expected field %q to exist", key)
					continue
				}
				if actualValue != expectedValue {
					t.Errorf("Expected field %q to be %v, got %v", key, expectedValue, actualValue)
				}
			}
		})
	}
}

func TestLogAppError_WithCodedError(t *testing.T) {
	mockLog := &mockLogger{}

	codedErr := &mockCodedError{
		message:   "test application error",
		code:      "VALIDATION",
		context:   map[string]string{"field": "pomodoro", "value": "0"},
		timestamp: time.Now(),
	}

	context := map[string]interface{}{
		"additional": "context",
		"count":      5,
	}

	LogAppError(mockLog, codedErr, "test_operation", context)

	if len(mockLog.errorCalls) != 1 {
		t.Fatalf("Expected 1 error call, got %d", len(mockLog.errorCalls))
	}

	call := mockLog.errorCalls[0]
	if !strings.Contains(call.msg, "Application error: test application error") {
		t.Errorf("Expected error message to contain application error, got %q", call.msg)
	}

	// Check that fields contain expected values
	fieldsMap := testutils.FieldsToMap(t, call.fields)

	expectedFields := map[string]interface{}{
		"operation":  "test_operation",
		"error_code": "VALIDATION",
		"field":      "pomodoro",
		"value":      "0",
		"additional": "context",
		"count":      5,
	}

	for key, expected := range expectedFields {
		if actual, exists := fieldsMap[key]; !exists {
			t.Errorf("Expected field %q not found in log call", key)
		} else if actual != expected {
			t.Errorf("Field %q: expected %v, got %v", key, expected, actual)
		}
	}
}

func TestLogAppError_WithRegularError(t *testing.T) {
	mockLog := &mockLogger{}

	err := errors.New("regular error")
	context := map[string]interface{}{
		"context": "value",
	}

	LogAppError(mockLog, err, "test_operation", context)

	if len(mockLog.errorCalls) != 1 {
		t.Fatalf("Expected 1 error call, got %d", len(mockLog.errorCalls))
	}

	call := mockLog.errorCalls[0]
	if !strings.Contains(call.msg, "Unexpected error: regular error") {
		t.Errorf("Expected error message to contain unexpected error, got %q", call.msg)
	}

	// Check that fields contain expected values
	fieldsMap := testutils.FieldsToMap(t, call.fields)

	if fieldsMap["operation"] != "test_operation" {
		t.Errorf("Expected operation field to be 'test_operation', got %v", fieldsMap["operation"])
	}

	if fieldsMap["context"] != "value" {
		t.Errorf("Expected context field to be 'value', got %v", fieldsMap["context"])
	}
}

func TestLogAppError_WithNilLogger(t *testing.T) {
	// Capture current log state
	originalOutput := log.Writer()
	originalFlags := log.Flags()
	originalPrefix := log.Prefix()

	// Capture log output to verify default logger is used
	var buf bytes.Buffer
	log.SetOutput(&buf)

	// Restore original state after test
	t.Cleanup(func() {
		log.SetOutput(originalOutput)
		log.SetFlags(originalFlags)
		log.SetPrefix(originalPrefix)
	})

	err := errors.New("test error")
	LogAppError(nil, err, "test_operation", nil)

	output := strings.TrimSpace(buf.String())

	// Find the JSON part (skip timestamp prefix if any)
	jsonStart := strings.Index(output, "{")
	if jsonStart == -1 {
		t.Fatalf("Expected JSON output, got: %q", output)
	}
	jsonPart := output[jsonStart:]

	// Parse JSON
	var logEntry map[string]interface{}
	if err := json.Unmarshal([]byte(jsonPart), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log entry: %v, output: %q", err, output)
	}

	// Check level
	if logEntry["level"] != "ERROR" {
		t.Errorf("Expected level ERROR, got %q", logEntry["level"])
	}

	// Check fields contain operation
	fields, ok := logEntry["fields"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected fields to be a map, got %T", logEntry["fields"])
	}

	if fields["operation"] != "test_operation" {
		t.Errorf("Expected operation field to be 'test_operation', got %v", fields["operation"])
	}
}

func TestLogOperation(t *testing.T) {
	mockLog := &mockLogger{}

	duration := 150 * time.Millisecond
	context := map[string]interface{}{
		"records": 5,
		"date":    "2026-08-26",
	}

	LogOperation(mockLog, "save_document", duration, context)

	if len(mockLog.infoCalls) != 1 {
		t.Fatalf("Expected 1 info call, got %d", len(mockLog.infoCalls))
	}

	call := mockLog.infoCalls[0]
	if !strings.Contains(call.msg, "Operation completed: save_document") {
		t.Errorf("Expected info message to contain operation completion, got %q", call.msg)
	}

	// Check that fields contain expected values
	fieldsMap := testutils.FieldsToMap(t, call.fields)

	expectedFields := map[string]interface{}{
		"operation":   "save_document",
		"duration_ms": int64(150),
		"records":     5,
		"date":        "2026-08-26",
	}

	for key, expected := range expectedFields {
		if actual, exists := fieldsMap[key]; !exists {
			t.Errorf("Expected field %q not found in log call", key)
		} else if actual != expected {
			t.Errorf("Field %q: expected %v, got %v", key, expected, actual)
		}
	}
}

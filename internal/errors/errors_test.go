package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "error with wrapped error",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "failed to read input",
				Err:     errors.New("file not found"),
			},
			expected: "input: failed to read input: file not found",
		},
		{
			name: "error without wrapped error",
			appError: &AppError{
				Type:    ErrorTypeParse,
				Message: "invalid JSON syntax",
				Err:     nil,
			},
			expected: "parse: invalid JSON syntax",
		},
		{
			name: "column error",
			appError: &AppError{
				Type:    ErrorTypeColumn,
				Message: "invalid column: address",
			},
			expected: "column: invalid column: address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	wrappedErr := errors.New("wrapped error")
	appErr := &AppError{
		Type:    ErrorTypeInput,
		Message: "test message",
		Err:     wrappedErr,
	}

	result := appErr.Unwrap()
	assert.Equal(t, wrappedErr, result)
}

func TestAppError_Is(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		target   error
		expected bool
	}{
		{
			name: "same type",
			appError: &AppError{
				Type:    ErrorTypeParse,
				Message: "test message",
			},
			target: &AppError{
				Type:    ErrorTypeParse,
				Message: "different message",
				Err:     errors.New("some error"),
			},
			expected: true,
		},
		{
			name: "different type",
			appError: &AppError{
				Type:    ErrorTypeShape,
				Message: "test message",
			},
			target: &AppError{
				Type:    ErrorTypeRecord,
				Message: "test message",
			},
			expected: false,
		},
		{
			name: "not an AppError",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "test message",
			},
			target:   errors.New("standard error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Is(tt.target)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConstructors(t *testing.T) {
	cause := errors.New("cause")

	tests := []struct {
		name     string
		err      *AppError
		expected ErrorType
	}{
		{"input", NewInputError("m", cause), ErrorTypeInput},
		{"parse", NewParseError("m", cause), ErrorTypeParse},
		{"shape", NewShapeError("m", cause), ErrorTypeShape},
		{"record", NewRecordError("m", cause), ErrorTypeRecord},
		{"column", NewColumnError("m", cause), ErrorTypeColumn},
		{"config", NewConfigError("m", cause), ErrorTypeConfig},
		{"output", NewOutputError("m", cause), ErrorTypeOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Type)
			assert.Equal(t, "m", tt.err.Message)
			assert.True(t, errors.Is(tt.err, cause))
		})
	}
}

func TestUserFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "parse error",
			err:      NewParseError("JSON syntax error at offset 12", ErrInvalidJSON),
			expected: "JSON parsing error: JSON syntax error at offset 12",
		},
		{
			name:     "shape error",
			err:      NewShapeError("root object is not an array", ErrRootNotArray),
			expected: "Document shape error: root object is not an array",
		},
		{
			name:     "record error",
			err:      NewRecordError("invalid json object: [1,2]", nil),
			expected: "Record error: invalid json object: [1,2]",
		},
		{
			name:     "column error",
			err:      NewColumnError("invalid column: address", nil),
			expected: "Column error: invalid column: address",
		},
		{
			name:     "config error",
			err:      NewConfigError("at least one column is required", nil),
			expected: "Configuration error: at least one column is required",
		},
		{
			name:     "output error",
			err:      NewOutputError("failed to flush output", errors.New("disk full")),
			expected: "Output error: failed to flush output",
		},
		{
			name:     "bare sentinel",
			err:      ErrNoInput,
			expected: "Error: No input provided. Please specify a file with -i or pipe JSON data to stdin.",
		},
		{
			name:     "unknown error",
			err:      errors.New("something else"),
			expected: "Error: something else",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UserFriendlyError(tt.err))
		})
	}
}

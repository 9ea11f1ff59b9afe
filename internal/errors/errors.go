package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON     = errors.New("invalid JSON format")
	ErrTrailingData    = errors.New("trailing data after the JSON document")
	ErrRootNotArray    = errors.New("root object is not an array")
	ErrNoInput         = errors.New("no input provided: please specify a file with -i or pipe JSON data to stdin")
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidFilePath = errors.New("invalid file path")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeParse   ErrorType = "parse"
	ErrorTypeShape   ErrorType = "shape"
	ErrorTypeRecord  ErrorType = "record"
	ErrorTypeColumn  ErrorType = "column"
	ErrorTypeConfig  ErrorType = "config"
	ErrorTypeOutput  ErrorType = "output"
	ErrorTypeUnknown ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	// Check if target is also an *AppError and if the types match
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to opening or reading input
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewParseError creates a new error related to JSON parsing
func NewParseError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeParse,
		Message: message,
		Err:     err,
	}
}

// NewShapeError creates a new error for a top-level document of the wrong shape
func NewShapeError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeShape,
		Message: message,
		Err:     err,
	}
}

// NewRecordError creates a new error for a record that is not a JSON object
func NewRecordError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeRecord,
		Message: message,
		Err:     err,
	}
}

// NewColumnError creates a new error for a column holding an unsupported value
func NewColumnError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeColumn,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to configuration resolution
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParse:
			return fmt.Sprintf("JSON parsing error: %s", appErr.Message)
		case ErrorTypeShape:
			return fmt.Sprintf("Document shape error: %s", appErr.Message)
		case ErrorTypeRecord:
			return fmt.Sprintf("Record error: %s", appErr.Message)
		case ErrorTypeColumn:
			return fmt.Sprintf("Column error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide valid JSON data."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	}
	if errors.Is(err, ErrTrailingData) {
		return "Error: Extra data found after the JSON document. Use --no-root for concatenated documents."
	}
	if errors.Is(err, ErrRootNotArray) {
		return "Error: The root of the document is not an array. Use --no-root for concatenated documents."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe JSON data to stdin."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}

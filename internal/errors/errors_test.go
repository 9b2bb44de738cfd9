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
				Type:    ErrorTypeParsing,
				Message: "invalid JSON syntax",
				Err:     nil,
			},
			expected: "parsing: invalid JSON syntax",
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
				Type:    ErrorTypeInput,
				Message: "test message",
				Err:     nil,
			},
			target: &AppError{
				Type:    ErrorTypeInput,
				Message: "different message",
				Err:     errors.New("some error"),
			},
			expected: true,
		},
		{
			name: "different type",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "test message",
				Err:     nil,
			},
			target: &AppError{
				Type:    ErrorTypeParsing,
				Message: "test message",
				Err:     nil,
			},
			expected: false,
		},
		{
			name: "not an AppError",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "test message",
				Err:     nil,
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

func TestUserFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "input error",
			err:      NewInputError("failed to read file", nil),
			expected: "Input error: failed to read file",
		},
		{
			name:     "parsing error",
			err:      NewParsingError("invalid JSON syntax", nil),
			expected: "Parsing error: invalid JSON syntax",
		},
		{
			name:     "config error",
			err:      NewConfigError("failed to load config", nil),
			expected: "Configuration error: failed to load config",
		},
		{
			name:     "compile error",
			err:      NewCompileError("failed to compile definitions", nil),
			expected: "Compile error: failed to compile definitions",
		},
		{
			name:     "compile error with unsupported value",
			err:      NewCompileError("failed to compile definitions", NewUnsupportedValueError("x", "x", nil, "null values have no type")),
			expected: `Compile error: failed to compile definitions: null values have no type for key "x" (value null)`,
		},
		{
			name:     "format error",
			err:      NewFormatError("failed to format output", nil),
			expected: "Formatting error: failed to format output",
		},
		{
			name:     "output error",
			err:      NewOutputError("failed to write output", nil),
			expected: "Output error: failed to write output",
		},
		{
			name:     "standard error - empty input",
			err:      ErrEmptyInput,
			expected: "Error: The input is empty. Please provide valid JSON data.",
		},
		{
			name:     "standard error - invalid JSON",
			err:      ErrInvalidJSON,
			expected: "Error: The input contains invalid JSON. Please check your JSON syntax.",
		},
		{
			name:     "standard error - out of date",
			err:      ErrOutOfDate,
			expected: "Error: The generated definitions are out of date. Run without --check to regenerate them.",
		},
		{
			name:     "bare unsupported value",
			err:      NewUnsupportedValueError("", "", nil, "top-level value must be an object"),
			expected: "Error: top-level value must be an object (value null)",
		},
		{
			name:     "unknown error",
			err:      errors.New("some unknown error"),
			expected: "Error: some unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := UserFriendlyError(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestUnsupportedValueError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *UnsupportedValueError
		expected string
	}{
		{
			name:     "top-level key",
			err:      NewUnsupportedValueError("x", "x", nil, "null values have no type"),
			expected: `null values have no type for key "x" (value null)`,
		},
		{
			name:     "nested key",
			err:      NewUnsupportedValueError("debug", "flags.debug", nil, "null values have no type"),
			expected: `null values have no type for key "debug" at flags.debug (value null)`,
		},
		{
			name:     "root",
			err:      NewUnsupportedValueError("", "", 42, "top-level value must be an object"),
			expected: "top-level value must be an object (value 42 (int))",
		},
		{
			name:     "default reason",
			err:      &UnsupportedValueError{Key: "f", Path: "f"},
			expected: `unsupported value for key "f" (value null)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestUnsupportedValueError_Is(t *testing.T) {
	err := NewCompileError("failed", NewUnsupportedValueError("x", "x", nil, ""))

	assert.True(t, errors.Is(err, ErrUnsupportedValue))
	assert.False(t, errors.Is(err, ErrInvalidJSON))

	var unsupported *UnsupportedValueError
	assert.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "x", unsupported.Key)
}

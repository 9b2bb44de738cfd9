package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput       = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON      = errors.New("invalid JSON format")
	ErrInvalidYAML      = errors.New("invalid YAML format")
	ErrFileNotFound     = errors.New("file not found")
	ErrFileEmpty        = errors.New("file is empty")
	ErrNoInput          = errors.New("no input provided: please specify a file with -i or pipe JSON data to stdin")
	ErrInvalidFilePath  = errors.New("invalid file path")
	ErrUnknownFormat    = errors.New("unknown input format")
	ErrUnsupportedValue = errors.New("unsupported value")
	ErrOutOfDate        = errors.New("generated definitions are out of date")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeParsing ErrorType = "parsing"
	ErrorTypeConfig  ErrorType = "config"
	ErrorTypeCompile ErrorType = "compile"
	ErrorTypeFormat  ErrorType = "format"
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
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewParsingError creates a new error related to input decoding
func NewParsingError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeParsing,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to loading configuration
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// NewCompileError creates a new error related to compiling definitions
func NewCompileError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeCompile,
		Message: message,
		Err:     err,
	}
}

// NewFormatError creates a new error related to output formatting
func NewFormatError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeFormat,
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

// UnsupportedValueError reports a value that has no type rendering: null,
// a non-JSON runtime value, or a top-level value that is not an object.
type UnsupportedValueError struct {
	// Key is the member key holding the value, empty for the root.
	Key string
	// Path locates the value from the root, e.g. "flags.levels[2]".
	Path   string
	Value  any
	Reason string
}

// Error implements error interface
func (e *UnsupportedValueError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "unsupported value"
	}
	if e.Path == "" {
		return fmt.Sprintf("%s (value %s)", reason, describeValue(e.Value))
	}
	if e.Path == e.Key {
		return fmt.Sprintf("%s for key %q (value %s)", reason, e.Key, describeValue(e.Value))
	}
	return fmt.Sprintf("%s for key %q at %s (value %s)", reason, e.Key, e.Path, describeValue(e.Value))
}

// Is reports ErrUnsupportedValue as a match so callers need not use errors.As.
func (e *UnsupportedValueError) Is(target error) bool {
	return target == ErrUnsupportedValue
}

// NewUnsupportedValueError creates an UnsupportedValueError.
func NewUnsupportedValueError(key, path string, value any, reason string) *UnsupportedValueError {
	return &UnsupportedValueError{
		Key:    key,
		Path:   path,
		Value:  value,
		Reason: reason,
	}
}

func describeValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v (%T)", v, v)
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("Parsing error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeCompile:
			var unsupported *UnsupportedValueError
			if errors.As(appErr.Err, &unsupported) {
				return fmt.Sprintf("Compile error: %s: %s", appErr.Message, unsupported.Error())
			}
			return fmt.Sprintf("Compile error: %s", appErr.Message)
		case ErrorTypeFormat:
			return fmt.Sprintf("Formatting error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	var unsupported *UnsupportedValueError
	if errors.As(err, &unsupported) {
		return fmt.Sprintf("Error: %s", unsupported.Error())
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide valid JSON data."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	}
	if errors.Is(err, ErrInvalidYAML) {
		return "Error: The input contains invalid YAML. Please check your YAML syntax."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with valid JSON content."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe JSON data to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}
	if errors.Is(err, ErrOutOfDate) {
		return "Error: The generated definitions are out of date. Run without --check to regenerate them."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}

package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput          = errors.New("input is empty or contains only whitespace")
	ErrInvalidDocument     = errors.New("invalid document syntax")
	ErrFileNotFound        = errors.New("file not found")
	ErrFileEmpty           = errors.New("file is empty")
	ErrNoInput             = errors.New("no input provided: please specify a file with -i or pipe a document to stdin")
	ErrInvalidFilePath     = errors.New("invalid file path")
	ErrPathNotFound        = errors.New("path not found in document")
	ErrUnknownResourceType = errors.New("unknown resource type")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput      ErrorType = "input"
	ErrorTypeParsing    ErrorType = "parsing"
	ErrorTypeQuery      ErrorType = "query"
	ErrorTypeDescriptor ErrorType = "descriptor"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeOutput     ErrorType = "output"
	ErrorTypeUnknown    ErrorType = "unknown"
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

// Is reports whether target is an *AppError of the same type
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

func newError(errType ErrorType, message string, err error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// NewInputError creates a new error related to reading input
func NewInputError(message string, err error) *AppError {
	return newError(ErrorTypeInput, message, err)
}

// NewParsingError creates a new error related to document parsing
func NewParsingError(message string, err error) *AppError {
	return newError(ErrorTypeParsing, message, err)
}

// NewQueryError creates a new error related to path lookups
func NewQueryError(message string, err error) *AppError {
	return newError(ErrorTypeQuery, message, err)
}

// NewDescriptorError creates a new error related to resource descriptors
func NewDescriptorError(message string, err error) *AppError {
	return newError(ErrorTypeDescriptor, message, err)
}

// NewConfigError creates a new error related to the configuration file
func NewConfigError(message string, err error) *AppError {
	return newError(ErrorTypeConfig, message, err)
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return newError(ErrorTypeOutput, message, err)
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			// the wrapped syntax error carries the line and column
			if appErr.Err != nil && !errors.Is(appErr.Err, ErrInvalidDocument) {
				return fmt.Sprintf("Parsing error: %s: %v", appErr.Message, appErr.Err)
			}
			return fmt.Sprintf("Parsing error: %s", appErr.Message)
		case ErrorTypeQuery:
			return fmt.Sprintf("Query error: %s", appErr.Message)
		case ErrorTypeDescriptor:
			return fmt.Sprintf("Descriptor error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide a document."
	}
	if errors.Is(err, ErrInvalidDocument) {
		return "Error: The input is not a valid document. Please check its syntax."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with a document."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe a document to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}
	if errors.Is(err, ErrPathNotFound) {
		return "Error: The requested path does not exist in the document."
	}
	if errors.Is(err, ErrUnknownResourceType) {
		return "Error: The resource type is not registered."
	}

	return fmt.Sprintf("Error: %v", err)
}

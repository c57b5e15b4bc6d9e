package errors

import (
	"errors"
	"fmt"
)

// OptError is the structured error type for optindex.
// It carries enough context for logging, JSON output and CLI hints.
type OptError struct {
	// Code is the unique error code (e.g., "ERR_407_DUPLICATE_OPTION_ID").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Validation, Internal).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *OptError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *OptError) Unwrap() error {
	return e.Cause
}

// Is matches another OptError by code, so errors.Is works with sentinels
// built from New.
func (e *OptError) Is(target error) bool {
	if t, ok := target.(*OptError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
func (e *OptError) WithDetail(key, value string) *OptError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
func (e *OptError) WithSuggestion(suggestion string) *OptError {
	e.Suggestion = suggestion
	return e
}

// New creates a new OptError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *OptError {
	return &OptError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates an OptError from an existing error.
func Wrap(code string, err error) *OptError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *OptError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// IOError creates an I/O-related error.
func IOError(message string, cause error) *OptError {
	return New(ErrCodeFileNotFound, message, cause)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *OptError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *OptError {
	return New(ErrCodeInternal, message, cause)
}

// As finds the first OptError in err's chain.
func As(err error) (*OptError, bool) {
	var oe *OptError
	if errors.As(err, &oe) {
		return oe, true
	}
	return nil, false
}

// IsFatal checks if an error has fatal severity.
func IsFatal(err error) bool {
	if oe, ok := As(err); ok {
		return oe.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from an OptError in err's chain.
// Returns empty string if there is none.
func GetCode(err error) string {
	if oe, ok := As(err); ok {
		return oe.Code
	}
	return ""
}

// GetCategory extracts the category from an OptError in err's chain.
func GetCategory(err error) Category {
	if oe, ok := As(err); ok {
		return oe.Category
	}
	return ""
}

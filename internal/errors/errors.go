package errors

import (
	"fmt"
)

// SolrizerError is the structured error type used throughout Solrizer.
// It carries a stable code, a category, and the underlying cause so
// callers can classify failures without string matching.
type SolrizerError struct {
	// Code is the unique error code (e.g., "ERR_103_UNKNOWN_INDEXER").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, Repo, Indexing, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error
}

// Error implements the error interface.
func (e *SolrizerError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *SolrizerError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with SolrizerError.
func (e *SolrizerError) Is(target error) bool {
	if t, ok := target.(*SolrizerError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *SolrizerError) WithDetail(key, value string) *SolrizerError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// New creates a new SolrizerError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *SolrizerError {
	return &SolrizerError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Newf creates a new SolrizerError with a formatted message.
func Newf(code string, format string, args ...any) *SolrizerError {
	return New(code, fmt.Sprintf(format, args...), nil)
}

// Wrap creates a SolrizerError from an existing error.
// The error's message becomes the SolrizerError message.
func Wrap(code string, err error) *SolrizerError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *SolrizerError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// RepoError creates a repository access error.
func RepoError(message string, cause error) *SolrizerError {
	return New(ErrCodeResourceNotAvailable, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *SolrizerError {
	return New(ErrCodeInternal, message, cause)
}

// IsFatal checks if an error has fatal severity.
// Fatal errors should abort the current operation.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if se, ok := err.(*SolrizerError); ok {
		return se.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from a SolrizerError.
// Returns empty string if not a SolrizerError.
func GetCode(err error) string {
	if se, ok := err.(*SolrizerError); ok {
		return se.Code
	}
	return ""
}

// GetCategory extracts the category from a SolrizerError.
// Returns empty string if not a SolrizerError.
func GetCategory(err error) Category {
	if se, ok := err.(*SolrizerError); ok {
		return se.Category
	}
	return ""
}

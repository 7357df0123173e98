// Package errors provides structured error handling for Solrizer.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: Repository errors
//   - 3XX: Indexing pipeline errors
//   - 4XX: Validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryRepo indicates repository access errors.
	CategoryRepo Category = "REPO"
	// CategoryIndexing indicates indexing pipeline errors.
	CategoryIndexing Category = "INDEXING"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound       = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid        = "ERR_102_CONFIG_INVALID"
	ErrCodeUnknownIndexer       = "ERR_103_UNKNOWN_INDEXER"
	ErrCodeNoIndexersConfigured = "ERR_104_NO_INDEXERS_CONFIGURED"

	// Repository errors (200-299)
	ErrCodeResourceNotAvailable = "ERR_201_RESOURCE_NOT_AVAILABLE"
	ErrCodeGraphParse           = "ERR_202_GRAPH_PARSE"
	ErrCodeUnknownModel         = "ERR_203_UNKNOWN_MODEL"

	// Indexing errors (300-399)
	ErrCodeIndexerFailed  = "ERR_301_INDEXER_FAILED"
	ErrCodeFieldCollision = "ERR_302_FIELD_COLLISION"

	// Validation errors (400-499)
	ErrCodeInvalidInput   = "ERR_401_INVALID_INPUT"
	ErrCodeUnknownCommand = "ERR_402_UNKNOWN_COMMAND"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryRepo
	case '3':
		return CategoryIndexing
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode derives severity from error code.
// Collisions are warnings, configuration problems are fatal,
// everything else is a plain error.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeFieldCollision:
		return SeverityWarning
	case ErrCodeConfigNotFound, ErrCodeConfigInvalid, ErrCodeUnknownIndexer:
		return SeverityFatal
	default:
		return SeverityError
	}
}

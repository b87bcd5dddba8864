package wbapi

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	outcome, err := pipeline.Ingest(ctx, req)
//	if errors.Is(err, wbapi.ErrItemExists) {
//	    // Report the duplicate label to the caller
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownResourceType indicates the requested resource type is not registered.
	ErrUnknownResourceType = errors.New("unknown resource type")

	// ErrValidationFailed indicates a document failed well-formedness or schema validation.
	ErrValidationFailed = errors.New("validation failed")

	// ErrConnectionFailed indicates the knowledge base could not be reached.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrItemExists indicates an item with the requested label already exists.
	ErrItemExists = errors.New("item already exists")

	// ErrItemCreationFailed indicates the knowledge base rejected item creation.
	ErrItemCreationFailed = errors.New("item creation failed")

	// ErrPropertyInfoUnavailable indicates a property's datatype could not be retrieved.
	ErrPropertyInfoUnavailable = errors.New("property information unavailable")

	// ErrReferencedItemNotFound indicates a value of an item-typed property
	// does not match any existing item label.
	ErrReferencedItemNotFound = errors.New("referenced item not found")

	// ErrStatementRejected indicates the knowledge base refused a statement.
	ErrStatementRejected = errors.New("statement rejected")

	// ErrInvalidRequest indicates an ingest request is missing a required input.
	ErrInvalidRequest = errors.New("invalid request")
)

// usagePatterns are the message fragments cobra and pflag produce for command line misuse.
var usagePatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// IsUsageError reports whether err describes command line misuse.
func IsUsageError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, p := range usagePatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrValidationFailed):
		return ExitValidationFailed
	case errors.Is(err, ErrUnknownResourceType):
		return ExitUnknownResourceType
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrItemExists):
		return ExitItemExists
	case errors.Is(err, ErrItemCreationFailed),
		errors.Is(err, ErrPropertyInfoUnavailable),
		errors.Is(err, ErrReferencedItemNotFound),
		errors.Is(err, ErrStatementRejected):
		return ExitRemoteWriteFailed
	}

	if errors.Is(err, ErrInvalidRequest) || IsUsageError(err) {
		return ExitUsageError
	}

	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}

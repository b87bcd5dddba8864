package wbapi

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess             = 0  // Command completed successfully
	ExitGeneralError        = 1  // Unknown or unclassified error
	ExitUsageError          = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic               = 3  // Internal panic (unexpected crash)
	ExitValidationFailed    = 4  // At least one document failed validation
	ExitUnknownResourceType = 5  // Resource type is not registered
	ExitConfigError         = 10 // Invalid configuration
	ExitConnectionError     = 11 // Knowledge base unreachable
	ExitItemExists          = 12 // An item with the same label already exists
	ExitRemoteWriteFailed   = 13 // Item or statement creation failed
)

const (
	// DefaultLanguage is the label language used when none is configured.
	DefaultLanguage = "it"

	// DefaultHTTPTimeout bounds every request made to the knowledge base.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultServerAddr is the listen address of the HTTP server.
	DefaultServerAddr = ":8000"

	// DefaultMaxDocumentSize is the largest record accepted for validation.
	DefaultMaxDocumentSize = 10 << 20

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 200 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 10 * time.Second

	// DefaultRetryMaxAttempts is the default number of retries for idempotent reads.
	// Writes are never retried.
	DefaultRetryMaxAttempts = 0

	// MaxErrorPreviewLength is the maximum number of characters of a remote
	// response body kept in error messages.
	MaxErrorPreviewLength = 200

	// DefaultJournalPath is the JSON Lines journal written when no path is configured.
	DefaultJournalPath = "wikibase-api-journal.jsonl"
)

// ConfigFileName is the configuration file looked up in the working directory.
const ConfigFileName = "wikibase-api.yaml"

// RecordExtension is the file extension picked up when a directory is validated.
const RecordExtension = ".xml"

// Truncate shortens s to MaxErrorPreviewLength characters, appending an ellipsis when cut.
func Truncate(s string) string {
	r := []rune(s)
	if len(r) <= MaxErrorPreviewLength {
		return s
	}
	return string(r[:MaxErrorPreviewLength]) + "..."
}

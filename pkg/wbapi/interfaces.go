package wbapi

import "time"

// Logger receives progress messages from the pipeline, the Wikibase client
// and the HTTP server. Implementations must be safe for concurrent use.
type Logger interface {
	// Verbose reports per-field and per-request detail. Dropped unless
	// verbose output was requested.
	Verbose(format string, args ...interface{})

	// Info reports items created, servers started and similar milestones.
	Info(format string, args ...interface{})

	// Error reports failures that do not stop the caller.
	Error(format string, args ...interface{})
}

// ErrorClassifier decides whether a failed Wikibase read may be repeated.
type ErrorClassifier interface {
	IsTransient(err error) bool
}

// BackoffStrategy spaces out repeated reads.
type BackoffStrategy interface {
	// NextDelay returns the wait before retry number attempt, counted from 0.
	NextDelay(attempt int) time.Duration

	// MaxAttempts bounds the retries after the first call. 0 disables
	// retrying and a negative value retries until the context ends.
	MaxAttempts() int
}

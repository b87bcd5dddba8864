// Package logging provides concrete implementations of the wbapi.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr (or any writer) with thread-safe output
//   - SlogLogger: Forwards messages to a *slog.Logger; selected by log.format: json
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging

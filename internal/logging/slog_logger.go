package logging

import (
	"fmt"
	"io"
	"log/slog"
)

// SlogLogger adapts a *slog.Logger to wbapi.Logger.
// Verbose maps to Debug, Info to Info and Error to Error.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps logger. It panics if logger is nil.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		panic("logging: slog logger cannot be nil")
	}
	return &SlogLogger{logger: logger}
}

// NewJSONLogger returns a SlogLogger emitting JSON lines to w.
func NewJSONLogger(w io.Writer, verbose bool) *SlogLogger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return NewSlogLogger(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})))
}

// Verbose logs at debug level.
func (l *SlogLogger) Verbose(format string, args ...interface{}) {
	l.logger.Debug(sprintf(format, args))
}

// Info logs at info level.
func (l *SlogLogger) Info(format string, args ...interface{}) {
	l.logger.Info(sprintf(format, args))
}

// Error logs at error level.
func (l *SlogLogger) Error(format string, args ...interface{}) {
	l.logger.Error(sprintf(format, args))
}

func sprintf(format string, args []interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

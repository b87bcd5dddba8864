package validation

import (
	"fmt"
	"strings"
)

// FieldError describes one content problem found in a document.
// FieldID is nil for syntax errors and for mandatory-field gaps.
type FieldError struct {
	FieldID *string
	Message string
	Path    string
}

// Result contains the outcome of validating one document.
type Result struct {
	errors []FieldError
}

// Valid reports whether the document passed validation.
func (r Result) Valid() bool {
	return len(r.errors) == 0
}

// Errors returns a copy of the collected errors in the order they were found.
func (r Result) Errors() []FieldError {
	out := make([]FieldError, len(r.errors))
	copy(out, r.errors)
	return out
}

// ErrorString returns all error messages joined with semicolons.
// Returns empty string if no errors.
func (r Result) ErrorString() string {
	msgs := make([]string, 0, len(r.errors))
	for _, e := range r.errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Builder accumulates field errors. The zero value is ready to use.
type Builder struct {
	errors []FieldError
}

// Add appends an error and returns the builder for chaining.
func (b *Builder) Add(e FieldError) *Builder {
	b.errors = append(b.errors, e)
	return b
}

// AddError appends a document-level error with no field id and an empty path.
func (b *Builder) AddError(format string, args ...interface{}) *Builder {
	return b.Add(FieldError{Message: fmt.Sprintf(format, args...)})
}

// Result freezes the collected errors.
func (b *Builder) Result() Result {
	errs := make([]FieldError, len(b.errors))
	copy(errs, b.errors)
	return Result{errors: errs}
}

// Valid returns a passing result.
func Valid() Result {
	return Result{}
}

// SyntaxError returns the single-error result used for malformed input.
func SyntaxError(message string) Result {
	var b Builder
	return b.AddError("%s", message).Result()
}

package wikibase

import (
	"fmt"

	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

// APIError reports an unexpected response status.
type APIError struct {
	Op     string // Operation, e.g. "create item"
	Status int    // HTTP status code
	Body   string // Response body preview
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.Status, e.Body)
}

// StatusCode returns the HTTP status, letting retry classify the error.
func (e *APIError) StatusCode() int {
	return e.Status
}

func newAPIError(op string, status int, body []byte) *APIError {
	return &APIError{Op: op, Status: status, Body: wbapi.Truncate(string(body))}
}

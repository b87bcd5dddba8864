package xmldoc

import (
	"encoding/xml"
	"errors"
	"fmt"
)

// Messages for well-formedness violations the decoder does not report itself.
const (
	msgNoElement     = "no element found"
	msgJunkAfterRoot = "junk after document element"
)

// xmlqueryNoElement is the error text xmlquery returns for input without any element.
const xmlqueryNoElement = "xmlquery: invalid XML document"

// SyntaxError reports why a record is not well-formed.
// Message is the parser diagnostic shown to callers unchanged.
type SyntaxError struct {
	Line    int    // Line number (0 if unknown)
	Message string // Parser diagnostic
}

// Error returns the parser diagnostic.
func (e *SyntaxError) Error() string {
	return e.Message
}

// wrapXMLError converts decoder errors to SyntaxError, keeping the line number when known.
func wrapXMLError(err error) *SyntaxError {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &SyntaxError{Line: syntaxErr.Line, Message: syntaxErr.Error()}
	}
	if err.Error() == xmlqueryNoElement {
		return &SyntaxError{Message: msgNoElement}
	}
	return &SyntaxError{Message: err.Error()}
}

func tooLarge(size, limit int) *SyntaxError {
	return &SyntaxError{
		Message: fmt.Sprintf("document exceeds maximum size of %d bytes (got %d bytes)", limit, size),
	}
}

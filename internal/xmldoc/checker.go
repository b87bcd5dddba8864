package xmldoc

import (
	"bytes"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/ppedin/wikibase-api/internal/validation"
	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

// Checker decides whether raw bytes form a well-formed record.
type Checker struct {
	maxSize int
}

// Option configures a Checker.
type Option func(*Checker)

// WithMaxSize bounds the accepted input length in bytes. Non-positive disables the bound.
func WithMaxSize(n int) Option {
	return func(c *Checker) {
		c.maxSize = n
	}
}

// NewChecker creates a Checker with wbapi.DefaultMaxDocumentSize unless overridden.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{maxSize: wbapi.DefaultMaxDocumentSize}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check parses content once. Malformed input yields an invalid result with
// exactly one error carrying the parser diagnostic and a nil Document.
// Well-formed input yields a valid result and the parsed Document.
func (c *Checker) Check(content []byte) (validation.Result, *Document) {
	doc, err := c.Parse(content)
	if err != nil {
		return validation.SyntaxError(err.Error()), nil
	}
	return validation.Valid(), doc
}

// Parse builds a Document or returns a *SyntaxError.
func (c *Checker) Parse(content []byte) (*Document, error) {
	if c.maxSize > 0 && len(content) > c.maxSize {
		return nil, tooLarge(len(content), c.maxSize)
	}

	node, err := xmlquery.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, wrapXMLError(err)
	}

	root, serr := documentElement(node)
	if serr != nil {
		return nil, serr
	}

	return &Document{
		node: node,
		root: root,
		ns:   ResolveNamespace(root),
		size: len(content),
	}, nil
}

// documentElement returns the single root element, rejecting empty documents,
// additional top-level elements and stray top-level text.
func documentElement(node *xmlquery.Node) (*xmlquery.Node, *SyntaxError) {
	var root *xmlquery.Node
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.ElementNode:
			if root != nil {
				return nil, &SyntaxError{Message: msgJunkAfterRoot}
			}
			root = c
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if strings.TrimSpace(c.Data) == "" {
				continue
			}
			if root != nil {
				return nil, &SyntaxError{Message: msgJunkAfterRoot}
			}
			return nil, &SyntaxError{Message: "syntax error: text before document element"}
		}
	}
	if root == nil {
		return nil, &SyntaxError{Message: msgNoElement}
	}
	return root, nil
}

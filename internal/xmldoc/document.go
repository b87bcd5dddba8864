package xmldoc

import (
	"strings"

	"github.com/antchfx/xmlquery"
)

// Document is a parsed, well-formed record. It must not be mutated after Parse.
type Document struct {
	node *xmlquery.Node
	root *xmlquery.Node
	ns   Namespace
	size int
}

// Node returns the document node, the starting point for absolute patterns.
func (d *Document) Node() *xmlquery.Node {
	return d.node
}

// Root returns the root element.
func (d *Document) Root() *xmlquery.Node {
	return d.root
}

// Namespace returns the namespace context resolved from the root element.
func (d *Document) Namespace() Namespace {
	return d.ns
}

// Size returns the length of the parsed input in bytes.
func (d *Document) Size() int {
	return d.size
}

// RootName returns the local name of the root element.
func (d *Document) RootName() string {
	return d.root.Data
}

// IsDescendant reports whether node lies strictly inside ancestor.
func IsDescendant(node, ancestor *xmlquery.Node) bool {
	if node == nil || ancestor == nil {
		return false
	}
	for p := node.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// LeadingText returns the character data of n that precedes its first
// non-text child. Text that follows a child element is not included.
func LeadingText(n *xmlquery.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.TextNode && c.Type != xmlquery.CharDataNode {
			break
		}
		sb.WriteString(c.Data)
	}
	return sb.String()
}

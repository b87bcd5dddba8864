package xmldoc

import "github.com/antchfx/xmlquery"

// Alias is the prefix detection patterns use for the document's namespace.
const Alias = "ns"

// Namespace is the namespace context of a document.
type Namespace struct {
	URI     string
	Aliases map[string]string
}

// Declared reports whether the root element carries a namespace.
func (n Namespace) Declared() bool {
	return n.URI != ""
}

// ResolveNamespace derives the namespace context from the root element.
// A namespaced root maps Alias to its URI; a plain root yields an empty context.
func ResolveNamespace(root *xmlquery.Node) Namespace {
	if root == nil || root.NamespaceURI == "" {
		return Namespace{Aliases: map[string]string{}}
	}
	return Namespace{
		URI:     root.NamespaceURI,
		Aliases: map[string]string{Alias: root.NamespaceURI},
	}
}

package detect

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/ppedin/wikibase-api/internal/xmldoc"
)

const aliasPrefix = xmldoc.Alias + ":"

// checkNamespace binds aliased patterns while checking they compile.
const checkNamespace = "urn:wikibase-api:check"

// stripAlias derives the alias-free form of an aliased pattern.
func stripAlias(pattern string) string {
	return strings.ReplaceAll(pattern, aliasPrefix, "")
}

// patternSet holds compiled expressions keyed by their aliased source pattern.
type patternSet map[string]*xpath.Expr

// compilePlain compiles the alias-free form of each pattern.
func compilePlain(patterns []string) (patternSet, error) {
	set := make(patternSet, len(patterns))
	for _, p := range patterns {
		expr, err := xpath.Compile(stripAlias(p))
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", stripAlias(p), err)
		}
		set[p] = expr
	}
	return set, nil
}

// compileBound compiles each aliased pattern with the alias bound to uri.
func compileBound(patterns []string, uri string) (patternSet, error) {
	aliases := map[string]string{xmldoc.Alias: uri}
	set := make(patternSet, len(patterns))
	for _, p := range patterns {
		expr, err := xpath.CompileWithNS(p, aliases)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", p, err)
		}
		set[p] = expr
	}
	return set, nil
}

// query evaluates catalog patterns against one document. Aliased
// expressions are compiled on first use and belong to the query, so nothing
// derived from a document outlives it.
type query struct {
	plain   patternSet        // alias-free set shared by the catalog
	aliases map[string]string // nil for documents without a namespace
	bound   patternSet
}

func newQuery(plain patternSet, ns xmldoc.Namespace) query {
	if !ns.Declared() {
		return query{plain: plain}
	}
	return query{
		plain:   plain,
		aliases: map[string]string{xmldoc.Alias: ns.URI},
		bound:   patternSet{},
	}
}

func (q query) expr(pattern string) *xpath.Expr {
	plain, ok := q.plain[pattern]
	if !ok {
		panic(fmt.Sprintf("detect: pattern %q is not registered", pattern))
	}
	if q.aliases == nil {
		return plain
	}
	if expr, ok := q.bound[pattern]; ok {
		return expr
	}
	expr, err := xpath.CompileWithNS(pattern, q.aliases)
	if err != nil {
		// Unreachable: NewCatalog compiled every pattern against a bound alias.
		panic(fmt.Sprintf("detect: bind %q: %v", pattern, err))
	}
	q.bound[pattern] = expr
	return expr
}

// all returns the element matches of pattern evaluated from n.
func (q query) all(n *xmlquery.Node, pattern string) []*xmlquery.Node {
	nodes := xmlquery.QuerySelectorAll(n, q.expr(pattern))
	out := nodes[:0]
	for _, m := range nodes {
		if m.Type == xmlquery.ElementNode {
			out = append(out, m)
		}
	}
	return out
}

// first returns the first element match of pattern evaluated from n, or nil.
func (q query) first(n *xmlquery.Node, pattern string) *xmlquery.Node {
	if nodes := q.all(n, pattern); len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}

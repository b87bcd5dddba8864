package detect

import (
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/ppedin/wikibase-api/internal/xmldoc"
)

// Detector evaluates one rule against documents.
type Detector struct {
	rule    Rule
	catalog *Catalog
}

// Field returns the detected field.
func (d Detector) Field() Field {
	return d.rule.Field
}

// Detect returns the field values found in doc. It never fails on a
// well-formed document; absence yields empty Values.
func (d Detector) Detect(doc *xmldoc.Document) Values {
	if doc == nil {
		return nil
	}
	return d.detect(d.catalog.queryFor(doc.Namespace()), doc)
}

func (d Detector) detect(q query, doc *xmldoc.Document) Values {
	var out Values
	seen := map[string]bool{}
	for _, n := range d.matches(q, doc) {
		for _, raw := range d.rule.Strategy.extract(q, n) {
			v := strings.TrimSpace(raw)
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Matches returns the item elements the rule selects in doc, each at most once.
func (d Detector) Matches(doc *xmldoc.Document) []*xmlquery.Node {
	if doc == nil {
		return nil
	}
	return d.matches(d.catalog.queryFor(doc.Namespace()), doc)
}

func (d Detector) matches(q query, doc *xmldoc.Document) []*xmlquery.Node {
	var out []*xmlquery.Node
	seen := map[*xmlquery.Node]bool{}
	for _, container := range d.containers(q, doc) {
		for _, item := range d.rule.Items {
			for _, n := range q.all(container, item) {
				if seen[n] {
					continue
				}
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}

// containers resolves primary containers, then the legacy containers that
// do not lie inside any primary one.
func (d Detector) containers(q query, doc *xmldoc.Document) []*xmlquery.Node {
	primary := resolve(q, doc, d.rule.Primary)
	if d.rule.Legacy.IsZero() {
		return primary
	}

	out := primary
	for _, n := range resolve(q, doc, d.rule.Legacy) {
		if containsNode(primary, n) || withinAny(n, primary) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func resolve(q query, doc *xmldoc.Document, loc Location) []*xmlquery.Node {
	found := q.all(doc.Node(), loc.Container)
	if loc.ExcludeChildOf == "" {
		return found
	}
	regions := q.all(doc.Node(), loc.ExcludeChildOf)
	out := make([]*xmlquery.Node, 0, len(found))
	for _, n := range found {
		if !containsNode(regions, n.Parent) {
			out = append(out, n)
		}
	}
	return out
}

func withinAny(n *xmlquery.Node, ancestors []*xmlquery.Node) bool {
	for _, a := range ancestors {
		if xmldoc.IsDescendant(n, a) {
			return true
		}
	}
	return false
}

func containsNode(nodes []*xmlquery.Node, n *xmlquery.Node) bool {
	for _, m := range nodes {
		if m == n {
			return true
		}
	}
	return false
}

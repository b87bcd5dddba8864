package detect

import (
	"fmt"
	"sync"

	"github.com/ppedin/wikibase-api/internal/xmldoc"
)

// Catalog holds the compiled rule table. It is immutable after construction
// and safe for concurrent use.
type Catalog struct {
	rules    []Rule
	index    map[Field]int
	patterns []string
	plain    patternSet
}

// NewCatalog validates and compiles the given rules.
// Every pattern is compiled in its alias-free form and checked in its
// aliased form, so evaluation never meets an invalid pattern.
func NewCatalog(rules []Rule) (*Catalog, error) {
	c := &Catalog{index: make(map[Field]int, len(rules))}
	seen := map[string]bool{}

	for i, r := range rules {
		if r.Field == "" {
			return nil, fmt.Errorf("rule %d: field is required", i)
		}
		if _, dup := c.index[r.Field]; dup {
			return nil, fmt.Errorf("rule %d: duplicate field %q", i, r.Field)
		}
		if r.Primary.IsZero() {
			return nil, fmt.Errorf("field %q: primary container is required", r.Field)
		}
		if len(r.Items) == 0 {
			return nil, fmt.Errorf("field %q: at least one item pattern is required", r.Field)
		}
		if r.Strategy == nil {
			return nil, fmt.Errorf("field %q: strategy is required", r.Field)
		}
		c.index[r.Field] = i
		for _, p := range r.patterns() {
			if !seen[p] {
				seen[p] = true
				c.patterns = append(c.patterns, p)
			}
		}
	}
	c.rules = append([]Rule(nil), rules...)

	plain, err := compilePlain(c.patterns)
	if err != nil {
		return nil, err
	}
	if _, err := compileBound(c.patterns, checkNamespace); err != nil {
		return nil, err
	}
	c.plain = plain

	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// DefaultCatalog returns the shared catalog built from DefaultRules.
func DefaultCatalog() *Catalog {
	defaultOnce.Do(func() {
		c, err := NewCatalog(DefaultRules())
		if err != nil {
			panic(fmt.Sprintf("detect: default rules: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Fields returns the catalog fields in declaration order.
func (c *Catalog) Fields() []Field {
	out := make([]Field, len(c.rules))
	for i, r := range c.rules {
		out[i] = r.Field
	}
	return out
}

// Rule returns the rule declared for f.
func (c *Catalog) Rule(f Field) (Rule, bool) {
	i, ok := c.index[f]
	if !ok {
		return Rule{}, false
	}
	return c.rules[i], true
}

// Detector returns the detector for f.
func (c *Catalog) Detector(f Field) (Detector, bool) {
	rule, ok := c.Rule(f)
	if !ok {
		return Detector{}, false
	}
	return Detector{rule: rule, catalog: c}, true
}

// Detect runs the detector for f. Unknown fields yield no values.
func (c *Catalog) Detect(doc *xmldoc.Document, f Field) Values {
	d, ok := c.Detector(f)
	if !ok {
		return nil
	}
	return d.Detect(doc)
}

// Sweep runs the detectors for fields, or for every catalog field when
// none are given. Unknown fields are skipped.
func (c *Catalog) Sweep(doc *xmldoc.Document, fields ...Field) Detection {
	if len(fields) == 0 {
		fields = c.Fields()
	}
	out := make(Detection, len(fields))
	var q query
	if doc != nil {
		q = c.queryFor(doc.Namespace())
	}
	for _, f := range fields {
		d, ok := c.Detector(f)
		switch {
		case !ok:
		case doc == nil:
			out[f] = nil
		default:
			out[f] = d.detect(q, doc)
		}
	}
	return out
}

// queryFor returns a query for one document's namespace context.
func (c *Catalog) queryFor(ns xmldoc.Namespace) query {
	return newQuery(c.plain, ns)
}

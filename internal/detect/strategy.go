package detect

import (
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/ppedin/wikibase-api/internal/xmldoc"
)

// Strategy turns a matched element into zero or more raw values.
// Patterns lists the aliased patterns the strategy evaluates, so the
// catalog can compile them alongside the rule patterns.
type Strategy interface {
	Name() string
	Patterns() []string
	extract(q query, n *xmlquery.Node) []string
}

const (
	patternPersName = ".//ns:persName"
	patternForename = ".//ns:forename"
	patternSurname  = ".//ns:surname"
)

// Text extracts the element's leading text.
func Text() Strategy {
	return textStrategy{}
}

type textStrategy struct{}

func (textStrategy) Name() string       { return "text" }
func (textStrategy) Patterns() []string { return nil }

func (textStrategy) extract(_ query, n *xmlquery.Node) []string {
	return []string{xmldoc.LeadingText(n)}
}

// PersonName composes a display name from a persName element: forenames in
// document order (initials marked full="init" get a trailing period), then
// surnames, separated by single spaces. Elements other than persName are
// resolved to their first descendant persName. Without name parts the
// persName text is used, then the matched element's own text.
func PersonName() Strategy {
	return personNameStrategy{}
}

type personNameStrategy struct{}

func (personNameStrategy) Name() string { return "person-name" }

func (personNameStrategy) Patterns() []string {
	return []string{patternPersName, patternForename, patternSurname}
}

func (personNameStrategy) extract(q query, n *xmlquery.Node) []string {
	pers := n
	if n.Data != "persName" {
		pers = q.first(n, patternPersName)
	}

	if pers != nil {
		var parts []string
		for _, f := range q.all(pers, patternForename) {
			text := strings.TrimSpace(xmldoc.LeadingText(f))
			if text == "" {
				continue
			}
			if f.SelectAttr("full") == "init" {
				text += "."
			}
			parts = append(parts, text)
		}
		for _, s := range q.all(pers, patternSurname) {
			if text := strings.TrimSpace(xmldoc.LeadingText(s)); text != "" {
				parts = append(parts, text)
			}
		}
		if len(parts) > 0 {
			return []string{strings.Join(parts, " ")}
		}
		if text := strings.TrimSpace(xmldoc.LeadingText(pers)); text != "" {
			return []string{text}
		}
	}

	return []string{xmldoc.LeadingText(n)}
}

// RefIdentifier pairs a persName's ref attribute with each descendant
// idno of the given type as "<ref> - <id>". A bare id is produced when ref
// is missing, a bare ref when no id exists, and nothing when both are absent.
func RefIdentifier(idType string) Strategy {
	return refIdentifierStrategy{
		idType:  idType,
		pattern: ".//ns:idno[@type='" + idType + "']",
	}
}

type refIdentifierStrategy struct {
	idType  string
	pattern string
}

func (s refIdentifierStrategy) Name() string       { return "ref-identifier(" + s.idType + ")" }
func (s refIdentifierStrategy) Patterns() []string { return []string{s.pattern} }

func (s refIdentifierStrategy) extract(q query, n *xmlquery.Node) []string {
	ref := strings.TrimSpace(n.SelectAttr("ref"))

	var ids []string
	for _, idno := range q.all(n, s.pattern) {
		if id := strings.TrimSpace(xmldoc.LeadingText(idno)); id != "" {
			ids = append(ids, id)
		}
	}

	switch {
	case len(ids) == 0 && ref == "":
		return nil
	case len(ids) == 0:
		return []string{ref}
	case ref == "":
		return ids
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, ref+" - "+id)
	}
	return out
}

package detect

// Location selects containers with an absolute pattern.
// Containers whose parent element matches ExcludeChildOf are ignored.
type Location struct {
	Container      string
	ExcludeChildOf string
}

// IsZero reports whether the location is unset.
func (l Location) IsZero() bool {
	return l.Container == ""
}

// Rule declares how one field is detected.
type Rule struct {
	Field    Field
	Primary  Location
	Legacy   Location
	Items    []string
	Strategy Strategy
}

// patterns returns every aliased pattern the rule evaluates.
func (r Rule) patterns() []string {
	var out []string
	for _, loc := range []Location{r.Primary, r.Legacy} {
		if loc.Container != "" {
			out = append(out, loc.Container)
		}
		if loc.ExcludeChildOf != "" {
			out = append(out, loc.ExcludeChildOf)
		}
	}
	out = append(out, r.Items...)
	if r.Strategy != nil {
		out = append(out, r.Strategy.Patterns()...)
	}
	return out
}

package schema

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/ppedin/wikibase-api/internal/detect"
	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

var propertyIDPattern = regexp.MustCompile(`^P[1-9][0-9]*$`)

// PropertyMap assigns a knowledge base property id to each field.
type PropertyMap map[detect.Field]string

// DefaultProperties returns the property ids of the reference knowledge base.
func DefaultProperties() PropertyMap {
	return PropertyMap{
		detect.Title:               "P72",
		detect.ShortTitle:          "P73",
		detect.AlternativeTitle:    "P74",
		detect.Author:              "P75",
		detect.VIAF:                "P76",
		detect.ISNI:                "P77",
		detect.Role:                "P79",
		detect.EntityType:          "P80",
		detect.Name:                "P81",
		detect.Edition:             "P82",
		detect.DigitalFormat:       "P83",
		detect.Editor:              "P84",
		detect.IDResource:          "P85",
		detect.DOI:                 "P86",
		detect.PublicationDate:     "P87",
		detect.PublicationPlace:    "P88",
		detect.IssuingAuthority:    "P89",
		detect.AvailableIn:         "P90",
		detect.DataLinkedResources: "P91",
		detect.Editorial:           "P92",
		detect.OriginalEdition:     "P93",
	}
}

// Property returns the property id for f.
func (m PropertyMap) Property(f detect.Field) (string, bool) {
	id, ok := m[f]
	return id, ok
}

// Fields returns the mapped fields sorted by id.
func (m PropertyMap) Fields() []detect.Field {
	out := make([]detect.Field, 0, len(m))
	for f := range m {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// WithOverrides returns a copy of m with the given field to property id
// assignments applied. Overrides must name catalog fields and valid ids.
func (m PropertyMap) WithOverrides(catalog *detect.Catalog, overrides map[string]string) (PropertyMap, error) {
	out := make(PropertyMap, len(m)+len(overrides))
	for f, id := range m {
		out[f] = id
	}
	for name, id := range overrides {
		f := detect.Field(name)
		if _, ok := catalog.Rule(f); !ok {
			return nil, fmt.Errorf("%w: property override for unknown field %q", wbapi.ErrInvalidConfig, name)
		}
		if !propertyIDPattern.MatchString(id) {
			return nil, fmt.Errorf("%w: invalid property id %q for field %q", wbapi.ErrInvalidConfig, id, name)
		}
		out[f] = id
	}
	return out, nil
}

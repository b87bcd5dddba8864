package schema

import (
	"fmt"
	"sort"

	"github.com/ppedin/wikibase-api/internal/detect"
	"github.com/ppedin/wikibase-api/internal/validation"
	"github.com/ppedin/wikibase-api/internal/xmldoc"
	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

// ResourceType names a kind of bibliographic record.
type ResourceType string

// SchedaBibliografica is the bibliographic record sheet.
const SchedaBibliografica ResourceType = "scheda_bibliografica"

// Entry declares what a resource type requires.
type Entry struct {
	Type        ResourceType
	Description string
	Mandatory   []detect.Field // checked in order; every gap is reported
	Fields      []detect.Field // extracted during ingest
}

// DefaultEntries returns the built-in resource types.
func DefaultEntries(catalog *detect.Catalog) []Entry {
	return []Entry{
		{
			Type:        SchedaBibliografica,
			Description: "Bibliographic record sheet",
			Mandatory:   []detect.Field{detect.Title},
			Fields:      catalog.Fields(),
		},
	}
}

// Registry is the closed set of resource types. It is read-only after
// construction and safe for concurrent use.
type Registry struct {
	catalog    *detect.Catalog
	properties PropertyMap
	entries    map[ResourceType]Entry
}

// NewRegistry validates entries against the catalog and the property map.
// Every mandatory and extracted field must be a catalog field with a property.
func NewRegistry(catalog *detect.Catalog, properties PropertyMap, entries []Entry) (*Registry, error) {
	if catalog == nil {
		panic("catalog cannot be nil")
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no resource types registered", wbapi.ErrInvalidConfig)
	}

	r := &Registry{
		catalog:    catalog,
		properties: properties,
		entries:    make(map[ResourceType]Entry, len(entries)),
	}
	for _, e := range entries {
		if e.Type == "" {
			return nil, fmt.Errorf("%w: resource type name is required", wbapi.ErrInvalidConfig)
		}
		if _, dup := r.entries[e.Type]; dup {
			return nil, fmt.Errorf("%w: duplicate resource type %q", wbapi.ErrInvalidConfig, e.Type)
		}
		for _, f := range append(append([]detect.Field(nil), e.Mandatory...), e.Fields...) {
			if _, ok := catalog.Rule(f); !ok {
				return nil, fmt.Errorf("%w: resource type %q references unknown field %q", wbapi.ErrInvalidConfig, e.Type, f)
			}
			if _, ok := properties.Property(f); !ok {
				return nil, fmt.Errorf("%w: resource type %q field %q has no property", wbapi.ErrInvalidConfig, e.Type, f)
			}
		}
		r.entries[e.Type] = e
	}
	return r, nil
}

// DefaultRegistry builds the registry of built-in resource types with the given properties.
func DefaultRegistry(properties PropertyMap) (*Registry, error) {
	catalog := detect.DefaultCatalog()
	return NewRegistry(catalog, properties, DefaultEntries(catalog))
}

// Catalog returns the detector catalog the registry validates with.
func (r *Registry) Catalog() *detect.Catalog {
	return r.catalog
}

// Properties returns the field to property map.
func (r *Registry) Properties() PropertyMap {
	return r.properties
}

// Lookup returns the entry for name or an error wrapping wbapi.ErrUnknownResourceType.
func (r *Registry) Lookup(name string) (Entry, error) {
	e, ok := r.entries[ResourceType(name)]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", wbapi.ErrUnknownResourceType, name)
	}
	return e, nil
}

// List returns all entries sorted by type name.
func (r *Registry) List() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// Validate checks that every mandatory field of resourceType is detected in doc.
// Each missing field yields one error; all gaps are reported together.
func (r *Registry) Validate(doc *xmldoc.Document, resourceType string) (validation.Result, error) {
	entry, err := r.Lookup(resourceType)
	if err != nil {
		return validation.Result{}, err
	}

	var b validation.Builder
	for _, f := range entry.Mandatory {
		if r.catalog.Detect(doc, f).Empty() {
			b.AddError("%s is mandatory and was not detected", f)
		}
	}
	return b.Result(), nil
}

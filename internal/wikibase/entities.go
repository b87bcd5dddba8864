package wikibase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// FindItemByLabel searches items by label in the given language and returns
// the id of the first hit. found is false when nothing matches.
func (c *Client) FindItemByLabel(ctx context.Context, label, language string) (id string, found bool, err error) {
	query := url.Values{
		"action":   {"wbsearchentities"},
		"search":   {label},
		"language": {language},
		"type":     {"item"},
		"format":   {"json"},
	}

	var out searchResponse
	if err := c.get(ctx, "search item", actionPath, query, http.StatusOK, &out); err != nil {
		return "", false, err
	}
	if len(out.Search) == 0 {
		return "", false, nil
	}
	return out.Search[0].ID, true, nil
}

// CreateItem creates an item with one label and an optional description.
func (c *Client) CreateItem(ctx context.Context, spec ItemSpec) (string, error) {
	if strings.TrimSpace(spec.Label) == "" {
		return "", fmt.Errorf("create item: label is required")
	}

	descriptions := map[string]string{}
	if spec.Description != "" {
		lang := spec.DescriptionLanguage
		if lang == "" {
			lang = spec.Language
		}
		descriptions[lang] = spec.Description
	}

	req := createItemRequest{
		Item: itemPayload{
			Labels:       map[string]string{spec.Language: spec.Label},
			Descriptions: descriptions,
			Aliases:      map[string]any{},
			Statements:   map[string]any{},
			Sitelinks:    map[string]any{},
		},
	}

	var out entityID
	if err := c.post(ctx, "create item", restPrefix+"/entities/items", req, http.StatusCreated, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("create item: response carries no id")
	}
	return out.ID, nil
}

// Property reads a property entity.
func (c *Client) Property(ctx context.Context, id string) (Property, error) {
	var out Property
	path := restPrefix + "/entities/properties/" + url.PathEscape(id)
	if err := c.get(ctx, "get property "+id, path, nil, http.StatusOK, &out); err != nil {
		return Property{}, err
	}
	if out.ID == "" {
		out.ID = id
	}
	return out, nil
}

// PropertyDatatype returns the datatype of a property.
func (c *Client) PropertyDatatype(ctx context.Context, id string) (string, error) {
	p, err := c.Property(ctx, id)
	if err != nil {
		return "", err
	}
	if p.Datatype == "" {
		return "", fmt.Errorf("get property %s: response carries no data_type", id)
	}
	return p.Datatype, nil
}

// CreateProperty creates a property and returns its id.
func (c *Client) CreateProperty(ctx context.Context, spec PropertySpec) (string, error) {
	if strings.TrimSpace(spec.Label) == "" {
		return "", fmt.Errorf("create property: label is required")
	}
	datatype := spec.Datatype
	if datatype == "" {
		datatype = DatatypeString
	}

	descriptions := map[string]string{}
	if spec.Description != "" {
		lang := spec.DescriptionLanguage
		if lang == "" {
			lang = spec.Language
		}
		descriptions[lang] = spec.Description
	}

	req := createPropertyRequest{
		Property: propertyPayload{
			Datatype:     datatype,
			Labels:       map[string]string{spec.Language: spec.Label},
			Descriptions: descriptions,
			Aliases:      map[string]any{},
			Statements:   map[string]any{},
		},
	}

	var out entityID
	if err := c.post(ctx, "create property", restPrefix+"/entities/properties", req, http.StatusCreated, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("create property: response carries no id")
	}
	return out.ID, nil
}

// AddStatement attaches one statement without qualifiers or references to an item.
func (c *Client) AddStatement(ctx context.Context, itemID, propertyID string, v Value) error {
	req := addStatementRequest{
		Statement: statementPayload{
			Property:   entityID{ID: propertyID},
			Value:      statementValue{Type: v.Kind, Content: v.Content},
			Qualifiers: []any{},
			References: []any{},
		},
		Tags: []string{},
	}
	path := restPrefix + "/entities/items/" + url.PathEscape(itemID) + "/statements"
	return c.post(ctx, "add statement "+propertyID+" to "+itemID, path, req, http.StatusCreated, nil)
}

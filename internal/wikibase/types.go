package wikibase

// Datatype names used by Wikibase properties.
const (
	DatatypeItem       = "wikibase-item"
	DatatypeString     = "string"
	DatatypeExternalID = "external-id"
	DatatypeURL        = "url"
)

// ValueKind is the statement value type sent to the REST API.
type ValueKind string

const (
	// ValueEntityID references another item by id.
	ValueEntityID ValueKind = "wikibase-entityid"
	// ValueLiteral carries the value itself.
	ValueLiteral ValueKind = "value"
)

// KindForDatatype returns the value kind statements of a property must use.
func KindForDatatype(datatype string) ValueKind {
	if datatype == DatatypeItem {
		return ValueEntityID
	}
	return ValueLiteral
}

// Value is the value of one statement.
type Value struct {
	Kind    ValueKind
	Content string
}

// ItemSpec describes an item to create.
type ItemSpec struct {
	Label               string
	Language            string
	Description         string
	DescriptionLanguage string
}

// PropertySpec describes a property to create.
type PropertySpec struct {
	Label               string
	Language            string
	Description         string
	DescriptionLanguage string
	Datatype            string
}

// Property is the subset of a property entity the client reads.
type Property struct {
	ID       string            `json:"id"`
	Datatype string            `json:"data_type"`
	Labels   map[string]string `json:"labels"`
}

type itemPayload struct {
	Labels       map[string]string `json:"labels"`
	Descriptions map[string]string `json:"descriptions"`
	Aliases      map[string]any    `json:"aliases"`
	Statements   map[string]any    `json:"statements"`
	Sitelinks    map[string]any    `json:"sitelinks"`
}

type createItemRequest struct {
	Item    itemPayload `json:"item"`
	Comment string      `json:"comment"`
}

type propertyPayload struct {
	Datatype     string            `json:"data_type"`
	Labels       map[string]string `json:"labels"`
	Descriptions map[string]string `json:"descriptions"`
	Aliases      map[string]any    `json:"aliases"`
	Statements   map[string]any    `json:"statements"`
}

type createPropertyRequest struct {
	Property propertyPayload `json:"property"`
	Comment  string          `json:"comment"`
}

type entityID struct {
	ID string `json:"id"`
}

type statementValue struct {
	Type    ValueKind `json:"type"`
	Content string    `json:"content"`
}

type statementPayload struct {
	Property   entityID       `json:"property"`
	Value      statementValue `json:"value"`
	Qualifiers []any          `json:"qualifiers"`
	References []any          `json:"references"`
}

type addStatementRequest struct {
	Statement statementPayload `json:"statement"`
	Tags      []string         `json:"tags"`
	Bot       bool             `json:"bot"`
	Comment   string           `json:"comment"`
}

type searchResponse struct {
	Search []struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	} `json:"search"`
}

package detect

// Field identifies a detectable bibliographic field.
type Field string

const (
	Title               Field = "title"
	ShortTitle          Field = "short_title"
	AlternativeTitle    Field = "alternative_title"
	Author              Field = "author"
	VIAF                Field = "viaf"
	ISNI                Field = "isni"
	Role                Field = "role"
	EntityType          Field = "type"
	Name                Field = "name"
	Edition             Field = "edition"
	DigitalFormat       Field = "digital_format"
	Editor              Field = "editor"
	IDResource          Field = "id_resource"
	DOI                 Field = "doi"
	PublicationDate     Field = "publication_date"
	PublicationPlace    Field = "publication_place"
	IssuingAuthority    Field = "issuing_authority"
	AvailableIn         Field = "available_in"
	DataLinkedResources Field = "data_linked_resources"
	Editorial           Field = "editorial"
	OriginalEdition     Field = "original_edition"
)

// String returns the field id.
func (f Field) String() string {
	return string(f)
}

// Values is the outcome of one detector: normalized, non-empty, unique
// strings in order of first occurrence. Order carries no meaning.
type Values []string

// Empty reports whether nothing was detected.
func (v Values) Empty() bool {
	return len(v) == 0
}

// Detection maps fields to their detected values.
type Detection map[Field]Values

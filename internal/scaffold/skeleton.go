package scaffold

import "github.com/ppedin/wikibase-api/internal/detect"

// step is one element on the way from fileDesc to a field value.
type step struct {
	tag string
	typ string // value of @type, if any
}

// placement puts text at the end of a path below fileDesc.
type placement struct {
	path []step
	text string
}

func at(text string, steps ...step) placement {
	return placement{path: steps, text: text}
}

func el(tag string) step         { return step{tag: tag} }
func typed(tag, typ string) step { return step{tag: tag, typ: typ} }
func in(steps ...step) []step    { return steps }
func join(a []step, b ...step) []step {
	return append(append([]step(nil), a...), b...)
}

var (
	titleStmt       = in(el("titleStmt"))
	authorName      = join(titleStmt, el("author"), el("persName"))
	respName        = join(titleStmt, el("respStmt"), el("resp"), el("persName"))
	edition         = in(el("editionStmt"), el("edition"))
	publicationStmt = in(el("publicationStmt"))
	notesStmt       = in(el("notesStmt"))
)

// skeleton places every catalog field. The element order in the output
// follows the first field that needs each element.
var skeleton = map[detect.Field][]placement{
	detect.Title:            {at(placeholder(detect.Title), join(titleStmt, typed("title", "main"))...)},
	detect.ShortTitle:       {at(placeholder(detect.ShortTitle), join(titleStmt, typed("title", "short"))...)},
	detect.AlternativeTitle: {at(placeholder(detect.AlternativeTitle), join(titleStmt, typed("title", "alternative"))...)},
	detect.Author: {
		at("[forename]", join(authorName, el("forename"))...),
		at("[surname]", join(authorName, el("surname"))...),
	},
	detect.VIAF:       {at(placeholder(detect.VIAF), join(authorName, typed("idno", "VIAF"))...)},
	detect.ISNI:       {at(placeholder(detect.ISNI), join(authorName, typed("idno", "ISNI"))...)},
	detect.Role:       {at(placeholder(detect.Role), join(titleStmt, el("respStmt"), el("resp"))...)},
	detect.EntityType: {at(placeholder(detect.EntityType), respName...)},
	detect.Name: {
		at("[forename]", join(respName, el("forename"))...),
		at("[surname]", join(respName, el("surname"))...),
	},
	detect.Edition:             {at(placeholder(detect.Edition), edition...)},
	detect.DigitalFormat:       {at(placeholder(detect.DigitalFormat), join(edition, typed("note", "digital-format"))...)},
	detect.Editor:              {at(placeholder(detect.Editor), join(publicationStmt, el("publisher"))...)},
	detect.IDResource:          {at(placeholder(detect.IDResource), join(publicationStmt, typed("idno", "identifier"))...)},
	detect.DOI:                 {at(placeholder(detect.DOI), join(publicationStmt, typed("idno", "DOI"))...)},
	detect.PublicationDate:     {at(placeholder(detect.PublicationDate), join(publicationStmt, el("date"))...)},
	detect.PublicationPlace:    {at(placeholder(detect.PublicationPlace), join(publicationStmt, el("pubPlace"))...)},
	detect.IssuingAuthority:    {at(placeholder(detect.IssuingAuthority), join(publicationStmt, el("authority"))...)},
	detect.AvailableIn:         {at(placeholder(detect.AvailableIn), join(publicationStmt, el("availability"), el("p"))...)},
	detect.DataLinkedResources: {at(placeholder(detect.DataLinkedResources), join(publicationStmt, el("listRef"), el("ref"), el("desc"))...)},
	detect.Editorial:           {at(placeholder(detect.Editorial), join(notesStmt, typed("note", "editorial"))...)},
	detect.OriginalEdition:     {at(placeholder(detect.OriginalEdition), join(notesStmt, typed("note", "original-edition"))...)},
}

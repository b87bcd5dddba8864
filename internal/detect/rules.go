package detect

const (
	sourceDesc = "//ns:sourceDesc"

	titleStmt       = "//ns:titleStmt"
	legacyTitleStmt = "//ns:sourceDesc//ns:biblFull//ns:titleStmt"

	editionStmt       = "//ns:editionStmt"
	legacyEditionStmt = "//ns:sourceDesc//ns:biblFull//ns:editionStmt"

	publicationStmt       = "//ns:fileDesc//ns:publicationStmt"
	legacyPublicationStmt = "//ns:sourceDesc//ns:biblFull//ns:publicationStmt"

	fileDesc = "//ns:fileDesc"
)

var (
	titleLocation       = Location{Container: titleStmt, ExcludeChildOf: sourceDesc}
	titleLegacy         = Location{Container: legacyTitleStmt}
	editionLocation     = Location{Container: editionStmt, ExcludeChildOf: sourceDesc}
	editionLegacy       = Location{Container: legacyEditionStmt}
	publicationLocation = Location{Container: publicationStmt, ExcludeChildOf: sourceDesc}
	publicationLegacy   = Location{Container: legacyPublicationStmt}
	publicationOnly     = Location{Container: publicationStmt}
	fileDescLocation    = Location{Container: fileDesc}
)

var responsiblePersons = []string{
	".//ns:author//ns:persName",
	".//ns:respStmt//ns:resp//ns:persName",
}

// DefaultRules returns the bibliographic field table in catalog order.
func DefaultRules() []Rule {
	return []Rule{
		{Field: Title, Primary: titleLocation, Legacy: titleLegacy,
			Items: []string{".//ns:title[@type='main']"}, Strategy: Text()},
		{Field: ShortTitle, Primary: titleLocation, Legacy: titleLegacy,
			Items: []string{".//ns:title[@type='short']"}, Strategy: Text()},
		{Field: AlternativeTitle, Primary: titleLocation, Legacy: titleLegacy,
			Items: []string{".//ns:title[@type='alternative']"}, Strategy: Text()},
		{Field: Author, Primary: titleLocation, Legacy: titleLegacy,
			Items: []string{".//ns:author"}, Strategy: PersonName()},
		{Field: VIAF, Primary: titleLocation, Legacy: titleLegacy,
			Items: responsiblePersons, Strategy: RefIdentifier("VIAF")},
		{Field: ISNI, Primary: titleLocation, Legacy: titleLegacy,
			Items: responsiblePersons, Strategy: RefIdentifier("ISNI")},
		{Field: Role, Primary: titleLocation, Legacy: titleLegacy,
			Items: []string{".//ns:resp"}, Strategy: Text()},
		{Field: EntityType, Primary: fileDescLocation,
			Items: []string{
				".//ns:titleStmt//ns:respStmt//ns:resp//ns:persName",
				".//ns:titleStmt//ns:respStmt//ns:resp//ns:orgName",
			}, Strategy: Text()},
		{Field: Name, Primary: titleLocation, Legacy: titleLegacy,
			Items: []string{".//ns:respStmt//ns:resp//ns:persName"}, Strategy: PersonName()},
		{Field: Edition, Primary: editionLocation, Legacy: editionLegacy,
			Items: []string{".//ns:note[@type='digital-edition']", ".//ns:edition"}, Strategy: Text()},
		{Field: DigitalFormat, Primary: fileDescLocation,
			Items: []string{".//ns:editionStmt//ns:edition//ns:note[@type='digital-format']"}, Strategy: Text()},
		{Field: Editor, Primary: publicationLocation, Legacy: publicationLegacy,
			Items: []string{".//ns:publisher"}, Strategy: Text()},
		{Field: IDResource, Primary: publicationOnly,
			Items: []string{".//ns:idno[@type='identifier']"}, Strategy: Text()},
		{Field: DOI, Primary: publicationOnly,
			Items: []string{".//ns:idno[@type='DOI']"}, Strategy: Text()},
		{Field: PublicationDate, Primary: publicationLocation, Legacy: publicationLegacy,
			Items: []string{".//ns:date"}, Strategy: Text()},
		{Field: PublicationPlace, Primary: publicationLocation, Legacy: publicationLegacy,
			Items: []string{".//ns:pubPlace"}, Strategy: Text()},
		{Field: IssuingAuthority, Primary: publicationOnly,
			Items: []string{".//ns:authority"}, Strategy: Text()},
		{Field: AvailableIn, Primary: publicationOnly,
			Items: []string{".//ns:availability//ns:p"}, Strategy: Text()},
		{Field: DataLinkedResources, Primary: publicationOnly,
			Items: []string{".//ns:listRef//ns:ref//ns:desc"}, Strategy: Text()},
		{Field: Editorial, Primary: fileDescLocation,
			Items: []string{".//ns:notesStmt//ns:note[@type='editorial']"}, Strategy: Text()},
		{Field: OriginalEdition, Primary: fileDescLocation,
			Items: []string{".//ns:notesStmt//ns:note[@type='original-edition']"}, Strategy: Text()},
	}
}

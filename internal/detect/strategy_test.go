package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func titleStmtWith(body string) string {
	return `<TEI xmlns="` + teiNS + `"><teiHeader><fileDesc><titleStmt>` + body +
		`</titleStmt></fileDesc></teiHeader></TEI>`
}

func TestPersonName(t *testing.T) {
	tests := []struct {
		name   string
		author string
		want   Values
	}{
		{
			name:   "initial and surname",
			author: `<author><persName><forename full="init">J</forename><surname>Doe</surname></persName></author>`,
			want:   Values{"J. Doe"},
		},
		{
			name:   "forenames before surnames",
			author: `<author><persName><surname>Verdi</surname><forename>Giuseppe</forename><forename>Fortunino</forename></persName></author>`,
			want:   Values{"Giuseppe Fortunino Verdi"},
		},
		{
			name:   "persName text fallback",
			author: `<author><persName> Dante Alighieri </persName></author>`,
			want:   Values{"Dante Alighieri"},
		},
		{
			name:   "author text fallback",
			author: `<author>Anonimo</author>`,
			want:   Values{"Anonimo"},
		},
		{
			name:   "empty author",
			author: `<author><persName/></author>`,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, titleStmtWith(tt.author))
			assert.Equal(t, tt.want, DefaultCatalog().Detect(doc, Author))
		})
	}
}

func TestPersonName_RespStmtNames(t *testing.T) {
	doc := parseDoc(t, titleStmtWith(`
		<respStmt><resp>Edizione <persName><forename>Anna</forename><surname>Neri</surname></persName></resp></respStmt>
		<respStmt><resp>Revisione <persName>Ufficio Tecnico</persName></resp></respStmt>`))

	assert.Equal(t, Values{"Anna Neri", "Ufficio Tecnico"}, DefaultCatalog().Detect(doc, Name))
	assert.Equal(t, Values{"Edizione", "Revisione"}, DefaultCatalog().Detect(doc, Role))
}

func TestRefIdentifier(t *testing.T) {
	tests := []struct {
		name   string
		author string
		want   Values
	}{
		{
			name:   "ref and one id",
			author: `<author><persName ref="viaf:1"><idno type="VIAF">1</idno></persName></author>`,
			want:   Values{"viaf:1 - 1"},
		},
		{
			name:   "ref and two ids",
			author: `<author><persName ref="r"><idno type="VIAF">1</idno><idno type="VIAF">2</idno></persName></author>`,
			want:   Values{"r - 1", "r - 2"},
		},
		{
			name:   "id only",
			author: `<author><persName><idno type="VIAF">42</idno></persName></author>`,
			want:   Values{"42"},
		},
		{
			name:   "ref only",
			author: `<author><persName ref="#p1"><idno type="ISNI">7</idno></persName></author>`,
			want:   Values{"#p1"},
		},
		{
			name:   "neither",
			author: `<author><persName>Nessuno</persName></author>`,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, titleStmtWith(tt.author))
			assert.Equal(t, tt.want, DefaultCatalog().Detect(doc, VIAF))
		})
	}
}

func TestEntityType_ResponsibleNames(t *testing.T) {
	doc := parseDoc(t, titleStmtWith(`
		<respStmt><resp>Curatela <persName>Mario Rossi</persName></resp></respStmt>
		<respStmt><resp>Finanziamento <orgName> Fondazione Pisa </orgName></resp></respStmt>
		<respStmt><resp>Revisione <persName>Mario Rossi</persName></resp></respStmt>
		<respStmt><resp>Codifica <persName><forename>Anna</forename></persName></resp></respStmt>
		<author><persName>Autore</persName></author>`))

	assert.Equal(t, Values{"Mario Rossi", "Fondazione Pisa"}, DefaultCatalog().Detect(doc, EntityType))
}

func TestStrategyNames(t *testing.T) {
	assert.Equal(t, "text", Text().Name())
	assert.Equal(t, "person-name", PersonName().Name())
	assert.Equal(t, "ref-identifier(ISNI)", RefIdentifier("ISNI").Name())
}

package detect

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppedin/wikibase-api/internal/xmldoc"
)

func TestDefaultRules_FieldOrder(t *testing.T) {
	want := []Field{
		Title, ShortTitle, AlternativeTitle, Author, VIAF, ISNI, Role, EntityType, Name,
		Edition, DigitalFormat, Editor, IDResource, DOI, PublicationDate, PublicationPlace,
		IssuingAuthority, AvailableIn, DataLinkedResources, Editorial, OriginalEdition,
	}
	assert.Equal(t, want, DefaultCatalog().Fields())
}

func TestNewCatalog_Rejects(t *testing.T) {
	valid := Rule{Field: Title, Primary: Location{Container: "//ns:titleStmt"}, Items: []string{".//ns:title"}, Strategy: Text()}

	tests := []struct {
		name  string
		rules []Rule
		err   string
	}{
		{"missing field", []Rule{{Primary: valid.Primary, Items: valid.Items, Strategy: Text()}}, "field is required"},
		{"duplicate field", []Rule{valid, valid}, "duplicate field"},
		{"missing primary", []Rule{{Field: Title, Items: valid.Items, Strategy: Text()}}, "primary container is required"},
		{"missing items", []Rule{{Field: Title, Primary: valid.Primary, Strategy: Text()}}, "item pattern"},
		{"missing strategy", []Rule{{Field: Title, Primary: valid.Primary, Items: valid.Items}}, "strategy is required"},
		{"bad pattern", []Rule{{Field: Title, Primary: Location{Container: "//ns:titleStmt["}, Items: valid.Items, Strategy: Text()}}, "compile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.rules)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}

func TestCatalog_Rule(t *testing.T) {
	rule, ok := DefaultCatalog().Rule(Edition)
	require.True(t, ok)
	assert.Equal(t, "//ns:editionStmt", rule.Primary.Container)
	assert.Equal(t, "//ns:sourceDesc", rule.Primary.ExcludeChildOf)
	assert.Equal(t, "//ns:sourceDesc//ns:biblFull//ns:editionStmt", rule.Legacy.Container)

	rule, ok = DefaultCatalog().Rule(DOI)
	require.True(t, ok)
	assert.True(t, rule.Legacy.IsZero())
}

func TestStripAlias(t *testing.T) {
	assert.Equal(t, ".//respStmt//resp//persName", stripAlias(".//ns:respStmt//ns:resp//ns:persName"))
	assert.Equal(t, ".//idno[@type='VIAF']", stripAlias(".//ns:idno[@type='VIAF']"))
}

func TestSweep_Subset(t *testing.T) {
	doc := parseDoc(t, loadFixture(t, "scheda_minimal.xml"))
	got := DefaultCatalog().Sweep(doc, Title, Author, Field("unknown"))

	assert.Len(t, got, 2)
	assert.Equal(t, Values{"Foo"}, got[Title])
	assert.True(t, got[Author].Empty())
}

func TestCatalog_ConcurrentNamespaces(t *testing.T) {
	c, err := NewCatalog(DefaultRules())
	require.NoError(t, err)

	uris := []string{teiNS, "urn:a", "urn:b", "urn:c"}
	docs := make([]*xmldoc.Document, 0, 32)
	for i := 0; i < 32; i++ {
		uri := uris[i%len(uris)]
		docs = append(docs, parseDoc(t, `<TEI xmlns="`+uri+`"><fileDesc><titleStmt><title type="main">T</title></titleStmt></fileDesc></TEI>`))
	}

	var wg sync.WaitGroup
	for _, doc := range docs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, Values{"T"}, c.Detect(doc, Title))
		}()
	}
	wg.Wait()
}

func TestCatalog_RetainsNothingPerNamespace(t *testing.T) {
	c, err := NewCatalog(DefaultRules())
	require.NoError(t, err)
	before := fmt.Sprintf("%#v", *c)

	for i := 0; i < 50; i++ {
		doc := parseDoc(t, fmt.Sprintf(`<TEI xmlns="urn:x:%d"><fileDesc><titleStmt><title type="main">T%d</title></titleStmt></fileDesc></TEI>`, i, i))
		assert.Equal(t, Values{fmt.Sprintf("T%d", i)}, c.Detect(doc, Title))
		assert.Equal(t, Values{fmt.Sprintf("T%d", i)}, c.Sweep(doc, Title)[Title])
	}

	assert.Equal(t, before, fmt.Sprintf("%#v", *c))
	assert.Len(t, c.plain, len(c.patterns))
}

func TestQuery_BoundSetIsPerDocument(t *testing.T) {
	c, err := NewCatalog(DefaultRules())
	require.NoError(t, err)

	a := parseDoc(t, `<TEI xmlns="urn:a"><fileDesc><titleStmt><title type="main">A</title></titleStmt></fileDesc></TEI>`)
	qa := c.queryFor(a.Namespace())
	d, _ := c.Detector(Title)
	assert.Equal(t, Values{"A"}, d.detect(qa, a))
	assert.NotEmpty(t, qa.bound)

	qb := c.queryFor(a.Namespace())
	assert.Empty(t, qb.bound)

	plain := c.queryFor(xmldoc.Namespace{})
	assert.Nil(t, plain.bound)
}

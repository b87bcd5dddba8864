package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppedin/wikibase-api/internal/checksum"
	"github.com/ppedin/wikibase-api/internal/files/scanner"
	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

func TestValidate_ValidRecord(t *testing.T) {
	workspace(t)
	writeFile(t, "scheda.xml", validRecord)

	out, err := execute(t, "validate", "scheda.xml")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ scheda.xml")
}

func TestValidate_MissingTitle(t *testing.T) {
	workspace(t)
	writeFile(t, "scheda.xml", untitledRecord)

	out, err := execute(t, "validate", "scheda.xml")
	require.Error(t, err)
	assert.ErrorIs(t, err, wbapi.ErrValidationFailed)
	assert.Equal(t, wbapi.ExitValidationFailed, wbapi.ExitCodeForError(err))
	assert.Contains(t, out, "✗ scheda.xml")
	assert.Contains(t, out, "title is mandatory and was not detected")
}

func TestValidate_DirectoryAsJSON(t *testing.T) {
	workspace(t)
	writeFile(t, filepath.Join("records", "a.xml"), validRecord)
	writeFile(t, filepath.Join("records", "nested", "b.xml"), untitledRecord)
	writeFile(t, filepath.Join("records", "c.xml"), "<TEI><unclosed></TEI>")
	writeFile(t, filepath.Join("records", "notes.txt"), "not a record")

	out, err := execute(t, "validate", "records", "--json")
	require.ErrorIs(t, err, wbapi.ErrValidationFailed)
	assert.Contains(t, err.Error(), "2 of 3 records")

	reports := decodeJSON[[]recordReport](t, out)
	require.Len(t, reports, 3)

	byPath := map[string]recordReport{}
	for _, r := range reports {
		byPath[filepath.ToSlash(r.Path)] = r
	}
	assert.True(t, byPath["records/a.xml"].Valid)
	assert.NotEmpty(t, byPath["records/a.xml"].SHA256)
	assert.False(t, byPath["records/nested/b.xml"].Valid)
	require.Len(t, byPath["records/nested/b.xml"].Errors, 1)

	syntax := byPath["records/c.xml"]
	assert.False(t, syntax.Valid)
	require.Len(t, syntax.Errors, 1)
	assert.Nil(t, syntax.Errors[0].FieldID)
}

func TestValidate_Summary(t *testing.T) {
	workspace(t)
	writeFile(t, "a.xml", validRecord)
	writeFile(t, "b.xml", untitledRecord)

	out, err := execute(t, "validate", "*.xml")
	require.Error(t, err)
	assert.Contains(t, out, "2 records: 1 valid, 1 invalid")
}

func TestValidate_UnknownResourceType(t *testing.T) {
	workspace(t)
	writeFile(t, "scheda.xml", validRecord)

	_, err := execute(t, "validate", "scheda.xml", "--type", "manoscritto")
	require.Error(t, err)
	assert.ErrorIs(t, err, wbapi.ErrUnknownResourceType)
	assert.Equal(t, wbapi.ExitUnknownResourceType, wbapi.ExitCodeForError(err))
}

func TestValidate_RequiresArgument(t *testing.T) {
	workspace(t)

	_, err := execute(t, "validate")
	require.Error(t, err)
	assert.Equal(t, wbapi.ExitUsageError, wbapi.ExitCodeForError(err))
}

func TestValidate_NoMatches(t *testing.T) {
	workspace(t)

	_, err := execute(t, "validate", "missing/**/*.xml")
	require.Error(t, err)
}

func TestMatching_KeepsSelectedPaths(t *testing.T) {
	workspace(t)
	writeFile(t, filepath.Join("records", "a.xml"), validRecord)
	writeFile(t, filepath.Join("other", "b.xml"), validRecord)

	sc := scanner.NewOSScanner(checksum.New())
	got, err := matching(sc, []string{"records"}, []string{
		filepath.Join("records", "a.xml"),
		filepath.Join("other", "b.xml"),
		"./" + filepath.Join("records", "a.xml"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("records", "a.xml"),
		"./" + filepath.Join("records", "a.xml"),
	}, got)
}

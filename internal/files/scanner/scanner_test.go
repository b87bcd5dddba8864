package scanner

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppedin/wikibase-api/internal/checksum"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"records/a.xml":         {Data: []byte("<TEI>a</TEI>")},
		"records/b.XML":         {Data: []byte("<TEI>b</TEI>")},
		"records/notes.txt":     {Data: []byte("not a record")},
		"records/nested/c.xml":  {Data: []byte("<TEI>c</TEI>")},
		"records/.hidden/d.xml": {Data: []byte("<TEI>d</TEI>")},
		"other/e.xml":           {Data: []byte("<TEI>e</TEI>")},
		"other/deep/er/f.xml":   {Data: []byte("<TEI>f</TEI>")},
		"single.txt":            {Data: []byte("<TEI>txt</TEI>")},
	}
}

func newTestScanner() *Scanner {
	return NewScanner(checksum.New(), testFS())
}

func TestNewScanner_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewScanner(nil, testFS()) })
	assert.Panics(t, func() { NewScanner(checksum.New(), nil) })
	assert.Panics(t, func() { NewOSScanner(nil) })
}

func TestExpand_Directory(t *testing.T) {
	paths, err := newTestScanner().Expand("records")
	require.NoError(t, err)
	assert.Equal(t, []string{"records/a.xml", "records/b.XML", "records/nested/c.xml"}, paths)
}

func TestExpand_FileKeepsAnyExtension(t *testing.T) {
	paths, err := newTestScanner().Expand("single.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"single.txt"}, paths)
}

func TestExpand_Globs(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{"other/**/*.xml", []string{"other/deep/er/f.xml", "other/e.xml"}},
		{"records/*.xml", []string{"records/a.xml"}},
		{"*/e.xml", []string{"other/e.xml"}},
		{"records/{a,b}.*", []string{"records/a.xml", "records/b.XML"}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			paths, err := newTestScanner().Expand(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, paths)
		})
	}
}

func TestExpand_DeduplicatesAcrossArgs(t *testing.T) {
	paths, err := newTestScanner().Expand("records/a.xml", "records", "./records/a.xml")
	require.NoError(t, err)
	assert.Equal(t, []string{"records/a.xml", "records/b.XML", "records/nested/c.xml"}, paths)
}

func TestRoots(t *testing.T) {
	roots, err := newTestScanner().Roots("records", "records/a.xml", "other/**/*.xml", "single.txt", "*/e.xml")
	require.NoError(t, err)
	assert.Equal(t, []string{"records", "other", "."}, roots)

	_, err = newTestScanner().Roots("records/missing.xml")
	assert.Error(t, err)
}

func TestExpand_Errors(t *testing.T) {
	s := newTestScanner()

	_, err := s.Expand("missing.xml")
	assert.Error(t, err)

	_, err = s.Expand("records/*.json")
	assert.ErrorIs(t, err, ErrNoMatch)

	_, err = s.Expand("records/[.xml")
	assert.Error(t, err)

	_, err = s.Expand(" ")
	assert.Error(t, err)
}

func TestScan_ReadsContentAndDigests(t *testing.T) {
	records, err := newTestScanner().Scan("other")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "other/deep/er/f.xml", records[0].Path)
	assert.Equal(t, []byte("<TEI>f</TEI>"), records[0].Content)
	assert.Equal(t, checksum.New().Digest([]byte("<TEI>f</TEI>")), records[0].Digest)
}

func TestOSScanner_AbsoluteAndRelative(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "r.xml"), []byte("<r/>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "top.xml"), []byte("<t/>"), 0o644))

	s := NewOSScanner(checksum.New())

	records, err := s.Scan(dir)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, filepath.Join(dir, "sub", "r.xml"), records[0].Path)
	assert.Equal(t, []byte("<t/>"), records[1].Content)

	paths, err := s.Expand(filepath.Join(dir, "**", "*.xml"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{filepath.Join(dir, "sub", "r.xml"), filepath.Join(dir, "top.xml")}, paths)
}

func TestIsRecord(t *testing.T) {
	assert.True(t, IsRecord("a.xml"))
	assert.True(t, IsRecord("dir/A.XML"))
	assert.False(t, IsRecord("a.xml.bak"))
	assert.False(t, IsRecord("xml"))
}

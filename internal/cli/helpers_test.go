package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/ppedin/wikibase-api/internal/config"
	"github.com/ppedin/wikibase-api/internal/tui"
)

const validRecord = `<TEI xmlns="http://www.tei-c.org/ns/1.0">
  <teiHeader>
    <fileDesc>
      <titleStmt>
        <title type="main">Divina Commedia</title>
        <author><persName>Dante Alighieri</persName></author>
      </titleStmt>
    </fileDesc>
  </teiHeader>
</TEI>
`

const untitledRecord = `<TEI xmlns="http://www.tei-c.org/ns/1.0">
  <teiHeader><fileDesc><titleStmt/></fileDesc></teiHeader>
</TEI>
`

// resetFlags restores every flag of cmd and its subcommands to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// workspace switches to a fresh directory and isolates the configuration
// environment.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{
		config.EnvWikibaseURL, config.EnvWikibaseUsername, config.EnvWikibasePassword,
		config.EnvWikibaseLanguage, config.EnvJournalDSN,
	} {
		t.Setenv(key, "")
	}
	t.Setenv(tui.EnvNonInteractive, "1")
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// execute runs the root command with args and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	_, err := rootCmd.ExecuteC()
	return out.String(), err
}

func decodeJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), s)
	return v
}

// fakeWikibase serves the subset of the Wikibase APIs the client uses.
type fakeWikibase struct {
	mu         sync.Mutex
	existing   map[string]string // label -> item id
	datatypes  map[string]string // property -> datatype; string when unset
	missing    map[string]bool   // properties answering 404
	items      []string
	statements map[string][]string // item -> properties
	properties []string
	nextItem   int
}

func newFakeWikibase(t *testing.T) (*fakeWikibase, *httptest.Server) {
	t.Helper()
	f := &fakeWikibase{
		existing:   map[string]string{},
		datatypes:  map[string]string{},
		missing:    map[string]bool{},
		statements: map[string][]string{},
		nextItem:   42,
	}
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)

	t.Setenv(config.EnvWikibaseURL, srv.URL)
	t.Setenv(config.EnvWikibaseUsername, "bot")
	t.Setenv(config.EnvWikibasePassword, "secret")
	return f, srv
}

func (f *fakeWikibase) handler() http.Handler {
	const rest = "/rest.php/wikibase/v1"
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api.php", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		hits := []map[string]string{}
		if id, ok := f.existing[r.URL.Query().Get("search")]; ok {
			hits = append(hits, map[string]string{"id": id, "label": r.URL.Query().Get("search")})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"search": hits})
	})

	mux.HandleFunc("GET "+rest+"/entities/properties/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id := r.PathValue("id")
		if f.missing[id] {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"code":"property-not-found"}`))
			return
		}
		dt := f.datatypes[id]
		if dt == "" {
			dt = "string"
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": id, "data_type": dt})
	})

	mux.HandleFunc("POST "+rest+"/entities/properties", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id := "P" + strconv.Itoa(200+len(f.properties))
		f.properties = append(f.properties, id)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
	})

	mux.HandleFunc("POST "+rest+"/entities/items", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		id := "Q" + strconv.Itoa(f.nextItem)
		f.nextItem++
		f.items = append(f.items, id)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": id})
	})

	mux.HandleFunc("POST "+rest+"/entities/items/{id}/statements", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		var body struct {
			Statement struct {
				Property struct {
					ID string `json:"id"`
				} `json:"property"`
			} `json:"statement"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		item := r.PathValue("id")
		f.statements[item] = append(f.statements[item], body.Statement.Property.ID)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	})

	return mux
}

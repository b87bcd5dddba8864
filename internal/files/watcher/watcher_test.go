package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppedin/wikibase-api/internal/checksum"
	"github.com/ppedin/wikibase-api/internal/logging"
)

func startWatcher(t *testing.T, dir string, prime map[string]string) <-chan []string {
	t.Helper()
	w, err := New([]string{dir}, checksum.New(), logging.NewNullLogger(), 20*time.Millisecond)
	require.NoError(t, err)
	for p, d := range prime {
		w.Prime(p, d)
	}

	ctx, cancel := context.WithCancel(context.Background())
	batches := make(chan []string, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, func(paths []string) { batches <- paths })
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return batches
}

func waitFor(t *testing.T, batches <-chan []string, path string) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case b := <-batches:
			for _, p := range b {
				if p == path {
					return
				}
			}
		case <-deadline:
			t.Fatalf("no change reported for %s", path)
		}
	}
}

func TestWatcher_ReportsWrittenRecords(t *testing.T) {
	dir := t.TempDir()
	batches := startWatcher(t, dir, nil)

	path := filepath.Join(dir, "a.xml")
	require.NoError(t, os.WriteFile(path, []byte("<TEI/>"), 0o644))
	waitFor(t, batches, path)
}

func TestWatcher_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	batches := startWatcher(t, dir, nil)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	marker := filepath.Join(dir, "marker.xml")
	require.NoError(t, os.WriteFile(marker, []byte("<m/>"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case b := <-batches:
			for _, p := range b {
				assert.NotEqual(t, filepath.Join(dir, "notes.txt"), p)
				if p == marker {
					return
				}
			}
		case <-deadline:
			t.Fatal("marker change not reported")
		}
	}
}

func TestWatcher_FollowsNewDirectories(t *testing.T) {
	dir := t.TempDir()
	batches := startWatcher(t, dir, nil)

	sub := filepath.Join(dir, "new")
	require.NoError(t, os.Mkdir(sub, 0o755))
	// Give the watcher a moment to add the directory.
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(sub, "b.xml")
	require.NoError(t, os.WriteFile(path, []byte("<TEI/>"), 0o644))
	waitFor(t, batches, path)
}

func TestFlush_SkipsUnchangedContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.xml")
	content := []byte("<TEI/>")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	w, err := New([]string{dir}, checksum.New(), logging.NewNullLogger(), time.Hour)
	require.NoError(t, err)
	defer w.fsw.Close()
	w.Prime(path, checksum.New().CalculateRaw(content))

	w.pending[path] = struct{}{}
	assert.Empty(t, w.flush())

	require.NoError(t, os.WriteFile(path, []byte("<TEI>changed</TEI>"), 0o644))
	w.pending[path] = struct{}{}
	assert.Equal(t, []string{path}, w.flush())

	w.pending[filepath.Join(dir, "gone.xml")] = struct{}{}
	assert.Empty(t, w.flush())
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing")}, checksum.New(), logging.NewNullLogger(), 0)
	assert.Error(t, err)
}

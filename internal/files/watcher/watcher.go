// Package watcher reports records that changed under watched directories.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ppedin/wikibase-api/internal/checksum"
	"github.com/ppedin/wikibase-api/internal/files/scanner"
	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

// DefaultDebounce is how long changes are collected before a batch is emitted.
const DefaultDebounce = 200 * time.Millisecond

// Watcher collects record changes and emits them in debounced batches.
// Content that did not change since the last batch is skipped.
type Watcher struct {
	fsw        *fsnotify.Watcher
	calculator checksum.Calculator
	logger     wbapi.Logger
	debounce   time.Duration

	pendingMu sync.Mutex
	pending   map[string]struct{}

	hashes map[string]string // path -> raw digest, touched only by Run
}

// New creates a watcher over dirs, recursively. Hidden directories are skipped.
// Panics if calculator or logger is nil.
func New(dirs []string, calculator checksum.Calculator, logger wbapi.Logger, debounce time.Duration) (*Watcher, error) {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		fsw:        fsw,
		calculator: calculator,
		logger:     logger,
		debounce:   debounce,
		pending:    make(map[string]struct{}),
		hashes:     make(map[string]string),
	}
	for _, dir := range dirs {
		if err := w.addRecursive(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Prime records the current digest of path so an unchanged save is not reported.
// Call it before Run.
func (w *Watcher) Prime(path, digest string) {
	w.hashes[filepath.Clean(path)] = digest
}

// Run delivers each batch of changed record paths to fn until ctx ends.
// Paths are cleaned and sorted within a batch. Run closes the watcher on return.
func (w *Watcher) Run(ctx context.Context, fn func(paths []string)) error {
	defer w.fsw.Close()

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch: %v", err)

		case <-ticker.C:
			if changed := w.flush(); len(changed) > 0 {
				fn(changed)
			}
		}
	}
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		w.logger.Verbose("Watching %s", path)
		return nil
	})
}

func (w *Watcher) handle(event fsnotify.Event) {
	name := filepath.Clean(event.Name)
	if !scanner.IsRecord(name) {
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(name); err == nil && info.IsDir() {
				if err := w.addRecursive(name); err != nil {
					w.logger.Error("watch: %v", err)
				}
			}
		}
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	w.pendingMu.Lock()
	w.pending[name] = struct{}{}
	w.pendingMu.Unlock()
}

// flush returns the pending paths whose content changed.
func (w *Watcher) flush() []string {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return nil
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	var changed []string
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			// Removed between the event and the flush.
			delete(w.hashes, p)
			continue
		}
		digest := w.calculator.CalculateRaw(content)
		if w.hashes[p] == digest {
			continue
		}
		w.hashes[p] = digest
		changed = append(changed, p)
	}
	sort.Strings(changed)
	return changed
}

package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ppedin/wikibase-api/internal/checksum"
	"github.com/ppedin/wikibase-api/pkg/wbapi"
)

// ErrNoMatch is returned when an argument resolves to no record.
var ErrNoMatch = errors.New("no records found")

// Record is one discovered file.
type Record struct {
	Path    string // as given or matched, using the OS separator
	Content []byte
	Digest  checksum.Digest
}

// Scanner expands arguments into records.
// Scanner is safe for concurrent use by multiple goroutines as long as the
// provided calculator is also thread-safe.
type Scanner struct {
	calculator checksum.Calculator
	open       func(base string) (fs.FS, error)
	fromSlash  func(string) string
}

// NewOSScanner creates a scanner reading the OS filesystem.
// Panics if calculator is nil.
func NewOSScanner(calculator checksum.Calculator) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		open:       func(base string) (fs.FS, error) { return os.DirFS(base), nil },
		fromSlash:  filepath.FromSlash,
	}
}

// NewScanner creates a scanner reading fsys. Absolute paths are not supported.
// Panics if calculator or fsys is nil.
func NewScanner(calculator checksum.Calculator, fsys fs.FS) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if fsys == nil {
		panic("fsys cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		open: func(base string) (fs.FS, error) {
			if base == "." {
				return fsys, nil
			}
			return fs.Sub(fsys, base)
		},
		fromSlash: func(s string) string { return s },
	}
}

type located struct {
	fsys fs.FS
	name string // slash path inside fsys
	path string // display path
}

// Expand resolves args to record paths without reading them.
func (s *Scanner) Expand(args ...string) ([]string, error) {
	found, err := s.expand(args)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(found))
	for i, l := range found {
		paths[i] = l.path
	}
	return paths, nil
}

// Scan resolves args and reads every record. Paths reached through more
// than one argument are returned once, at their first position.
func (s *Scanner) Scan(args ...string) ([]Record, error) {
	found, err := s.expand(args)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(found))
	for _, l := range found {
		content, err := fs.ReadFile(l.fsys, l.name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", l.path, err)
		}
		records = append(records, Record{
			Path:    l.path,
			Content: content,
			Digest: checksum.Digest{
				Raw:        s.calculator.CalculateRaw(content),
				Normalized: s.calculator.CalculateNormalized(content),
			},
		})
	}
	return records, nil
}

func (s *Scanner) expand(args []string) ([]located, error) {
	var out []located
	seen := make(map[string]bool)
	for _, arg := range args {
		found, err := s.expandOne(arg)
		if err != nil {
			return nil, err
		}
		for _, l := range found {
			if seen[l.path] {
				continue
			}
			seen[l.path] = true
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *Scanner) expandOne(arg string) ([]located, error) {
	if strings.TrimSpace(arg) == "" {
		return nil, fmt.Errorf("empty path")
	}
	clean := path.Clean(filepath.ToSlash(arg))
	base, pattern := doublestar.SplitPattern(clean)
	if pattern == "" {
		pattern = "."
	}

	fsys, err := s.open(base)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", base, err)
	}

	var names []string
	if hasMeta(pattern) {
		names, err = doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
		}
		sort.Strings(names)
	} else {
		names, err = literal(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", arg, err)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, arg)
	}

	out := make([]located, len(names))
	for i, name := range names {
		out[i] = located{fsys: fsys, name: name, path: s.fromSlash(path.Join(base, name))}
	}
	return out, nil
}

// Roots returns the directories below which args can match records: the
// directory itself for a directory argument, the containing directory for a
// file and the fixed prefix of a pattern. A missing literal path is an error.
func (s *Scanner) Roots(args ...string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, arg := range args {
		clean := path.Clean(filepath.ToSlash(arg))
		base, pattern := doublestar.SplitPattern(clean)

		root := base
		if !hasMeta(pattern) {
			fsys, err := s.open(base)
			if err != nil {
				return nil, fmt.Errorf("failed to open %s: %w", base, err)
			}
			info, err := fs.Stat(fsys, pattern)
			if err != nil {
				return nil, fmt.Errorf("failed to scan %s: %w", arg, err)
			}
			if info.IsDir() {
				root = path.Join(base, pattern)
			}
		}

		root = s.fromSlash(root)
		if !seen[root] {
			seen[root] = true
			out = append(out, root)
		}
	}
	return out, nil
}

// literal returns name itself for a file and the records below it for a directory.
func literal(fsys fs.FS, name string) ([]string, error) {
	info, err := fs.Stat(fsys, name)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{name}, nil
	}

	var names []string
	err = fs.WalkDir(fsys, name, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != name && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if IsRecord(p) {
			names = append(names, p)
		}
		return nil
	})
	return names, err
}

// IsRecord reports whether name carries the record extension.
func IsRecord(name string) bool {
	return strings.EqualFold(path.Ext(filepath.ToSlash(name)), wbapi.RecordExtension)
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

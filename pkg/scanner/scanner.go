package scanner

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vango-dev/fileroutes/pkg/routeconfig"
)

// Scanner scans a views directory.
type Scanner struct {
	rootDir string
	opts    ScanOptions
}

// ScanOptions configures scanning behavior.
type ScanOptions struct {
	// Sort orders siblings by specificity (static > required > optional > wildcard).
	// Without it, siblings keep directory listing order.
	Sort bool

	// Cache, if set, memoizes export extraction across scans.
	Cache *ExportCache
}

// NewScanner creates a scanner that sorts siblings.
func NewScanner(rootDir string) *Scanner {
	return NewScannerWithOptions(rootDir, ScanOptions{Sort: true})
}

// NewScannerWithOptions creates a scanner with explicit options.
func NewScannerWithOptions(rootDir string, opts ScanOptions) *Scanner {
	return &Scanner{rootDir: rootDir, opts: opts}
}

// Root returns the scanned directory.
func (s *Scanner) Root() string {
	return s.rootDir
}

// Scan walks the views directory and returns its metadata tree.
// The returned root is the views directory itself.
func (s *Scanner) Scan() (*routeconfig.Metadata, error) {
	info, err := os.Stat(s.rootDir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", s.rootDir)
	}

	root := &routeconfig.Metadata{Dir: true}
	if err := s.scanDir(s.rootDir, root); err != nil {
		return nil, err
	}
	return root, nil
}

// scanDir fills node with the layout and entries of dir.
func (s *Scanner) scanDir(dir string, node *routeconfig.Metadata) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	// Scan directories up front so a same-named view file can attach to them.
	dirs := make(map[string]*routeconfig.Metadata)
	for _, entry := range entries {
		if !entry.IsDir() || isIgnoredName(entry.Name()) {
			continue
		}
		child := &routeconfig.Metadata{Segment: SegmentFromName(entry.Name()), Dir: true}
		if err := s.scanDir(filepath.Join(dir, entry.Name()), child); err != nil {
			return err
		}
		dirs[entry.Name()] = child
	}

	var children []*routeconfig.Metadata
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			if child, ok := dirs[name]; ok {
				children = append(children, child)
			}
			continue
		}
		if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		base := strings.TrimSuffix(name, ".go")
		if !isLayoutFile(base) && base != indexName && isIgnoredName(base) {
			continue
		}

		ref, err := s.fileRef(filepath.Join(dir, name))
		if err != nil {
			return err
		}

		switch {
		case isLayoutFile(base):
			if node.Layout != nil {
				return fmt.Errorf("%s: multiple layout files (%s, %s)", dir, node.Layout.Path, ref.Path)
			}
			node.Layout = ref
		case base == indexName:
			children = append(children, &routeconfig.Metadata{Segment: "", View: ref})
		default:
			if d, ok := dirs[base]; ok && d.View == nil {
				d.View = ref
				continue
			}
			children = append(children, &routeconfig.Metadata{Segment: SegmentFromName(base), View: ref})
		}
	}

	if s.opts.Sort {
		SortSiblings(children)
	}
	node.Children = children
	return nil
}

func (s *Scanner) fileRef(path string) (*routeconfig.FileRef, error) {
	var (
		exports routeconfig.Exports
		err     error
	)
	if s.opts.Cache != nil {
		exports, err = s.opts.Cache.Read(path)
	} else {
		exports, err = ReadExports(path)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}

	rel, err := filepath.Rel(s.rootDir, path)
	if err != nil {
		return nil, err
	}
	return &routeconfig.FileRef{Path: filepath.ToSlash(rel), Exports: exports}, nil
}

// SortSiblings orders nodes by specificity: the index first, then static
// segments in lexical order, then required, optional and wildcard segments.
// Segments that fail classification sort as static.
func SortSiblings(nodes []*routeconfig.Metadata) {
	slices.SortStableFunc(nodes, func(a, b *routeconfig.Metadata) int {
		if c := cmp.Compare(rank(a.Segment), rank(b.Segment)); c != 0 {
			return c
		}
		return strings.Compare(a.Segment, b.Segment)
	})
}

// rank returns the sort bucket of a segment; lower sorts first.
func rank(segment string) int {
	if segment == "" {
		return 0
	}
	seg, err := routeconfig.ClassifySegment(segment)
	if err != nil {
		return 1
	}
	switch seg.Param {
	case routeconfig.Required:
		return 2
	case routeconfig.Optional:
		return 3
	case routeconfig.Wildcard:
		return 4
	}
	return 1
}

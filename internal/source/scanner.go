package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner expands directory arguments, including Go-style "./..." patterns,
// into the sorted set of directories containing Go source files.
type Scanner struct{}

// NewScanner creates a directory scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan resolves each argument to an absolute directory. Arguments ending
// in "/..." are walked recursively; vendor, testdata, hidden and
// underscore-prefixed directories are skipped. Only directories that
// actually contain non-test Go files are returned.
func (s *Scanner) Scan(args []string) ([]string, error) {
	var dirs []string
	seen := make(map[string]bool)

	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, arg := range args {
		recursive := strings.HasSuffix(arg, "/...")
		base := strings.TrimSuffix(arg, "/...")
		if base == "" {
			base = "."
		}

		abs, err := filepath.Abs(base)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", arg, err)
		}

		if !recursive {
			ok, err := hasGoFiles(abs)
			if err != nil {
				return nil, err
			}
			if ok {
				add(abs)
			}
			continue
		}

		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if path != abs && shouldSkipDirectory(d.Name()) {
				return filepath.SkipDir
			}
			ok, err := hasGoFiles(path)
			if err != nil {
				return err
			}
			if ok {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", arg, err)
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}

// shouldSkipDirectory filters directories that never contain scannable
// source.
func shouldSkipDirectory(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
		return true
	}
	switch name {
	case "vendor", "node_modules", "testdata", "build":
		return true
	}
	return false
}

// hasGoFiles reports whether the directory directly contains at least one
// non-test Go file.
func hasGoFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go") {
			return true, nil
		}
	}
	return false, nil
}

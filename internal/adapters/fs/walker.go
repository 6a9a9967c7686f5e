// Package fs provides the file system adapters: walking source trees,
// hashing generated files and writing them.
package fs

import (
	"bufio"
	"bytes"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/cachegen/internal/core/domain"
)

// skippedDirs are never descended into.
var skippedDirs = map[string]bool{
	".git":              true,
	".jj":               true,
	"vendor":            true,
	"testdata":          true,
	"node_modules":      true,
	domain.StateDirName: true,
}

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every file under root, skipping VCS, vendor and state
// directories and anything whose base name matches one of ignores.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}

			if d.IsDir() {
				if path != root && (skippedDirs[d.Name()] || matchesAny(d.Name(), ignores)) {
					return filepath.SkipDir
				}
				return nil
			}

			if matchesAny(d.Name(), ignores) {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// GeneratedFiles yields the files under root that end in suffix and start
// with the generated header.
func (w *Walker) GeneratedFiles(root, suffix string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for path := range w.WalkFiles(root, nil) {
			if !strings.HasSuffix(path, suffix) || !IsGenerated(path) {
				continue
			}
			if !yield(path) {
				return
			}
		}
	}
}

// IsGenerated reports whether the file at path starts with the generated header.
func IsGenerated(path string) bool {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return false
	}
	defer f.Close() //nolint:errcheck // Read-only file

	line, err := bufio.NewReader(f).ReadSlice('\n')
	if err != nil && len(line) == 0 {
		return false
	}
	return hasHeader(line)
}

func hasHeader(data []byte) bool {
	return bytes.HasPrefix(data, []byte(domain.GeneratedHeader))
}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if matched, _ := filepath.Match(p, name); matched {
			return true
		}
	}
	return false
}

// Package cas persists the manifest of generated files under the state directory.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/cachegen/internal/core/domain"
	"go.trai.ch/cachegen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestStore = (*Store)(nil)

// Store implements ports.ManifestStore with one JSON manifest per root.
// Entry paths are stored relative to the root.
type Store struct {
	mu sync.Mutex
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Get returns the entry recorded for path, or nil when there is none.
func (s *Store) Get(root, path string) (*domain.ManifestEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.read(root)
	if err != nil {
		return nil, err
	}

	entry, ok := m.Entries[relative(root, path)]
	if !ok {
		return nil, nil
	}
	entry.Path = absolute(root, entry.Path)
	return &entry, nil
}

// List returns all entries sorted by path, with absolute paths.
func (s *Store) List(root string) ([]domain.ManifestEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.read(root)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.ManifestEntry, 0, len(m.Entries))
	for _, e := range m.Entries {
		e.Path = absolute(root, e.Path)
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b domain.ManifestEntry) int {
		return strings.Compare(a.Path, b.Path)
	})
	return entries, nil
}

// Put records entry, replacing any previous one for the same path.
func (s *Store) Put(root string, entry domain.ManifestEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.read(root)
	if err != nil {
		return err
	}

	entry.Path = relative(root, entry.Path)
	m.Entries[entry.Path] = entry
	return s.write(root, m)
}

// Delete forgets path. The manifest file is removed once it is empty.
func (s *Store) Delete(root, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.read(root)
	if err != nil {
		return err
	}

	rel := relative(root, path)
	if _, ok := m.Entries[rel]; !ok {
		return nil
	}
	delete(m.Entries, rel)

	if len(m.Entries) == 0 {
		err := os.Remove(domain.DefaultManifestPath(root))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
		}
		return nil
	}
	return s.write(root, m)
}

func (s *Store) read(root string) (*domain.Manifest, error) {
	path := domain.DefaultManifestPath(root)

	//nolint:gosec // Path is derived from the configuration root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &domain.Manifest{Version: domain.ManifestVersion, Entries: map[string]domain.ManifestEntry{}}, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	var m domain.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}
	if m.Version != domain.ManifestVersion {
		return nil, zerr.With(zerr.With(domain.ErrManifestReadFailed, "path", path), "version", m.Version)
	}
	if m.Entries == nil {
		m.Entries = map[string]domain.ManifestEntry{}
	}
	return &m, nil
}

func (s *Store) write(root string, m *domain.Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}

	path := domain.DefaultManifestPath(root)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}

	//nolint:gosec // Path is derived from the configuration root
	if err := os.WriteFile(path, append(data, '\n'), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	return nil
}

func relative(root, path string) string {
	if !filepath.IsAbs(path) {
		return filepath.ToSlash(filepath.Clean(path))
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func absolute(root, rel string) string {
	p := filepath.FromSlash(rel)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

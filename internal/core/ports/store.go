package ports

import "go.trai.ch/cachegen/internal/core/domain"

// ManifestStore records the generated files of a root.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ManifestStore interface {
	// Get returns the entry recorded for path.
	// Returns nil, nil if not found.
	Get(root, path string) (*domain.ManifestEntry, error)

	// List returns all entries recorded for root, sorted by path.
	List(root string) ([]domain.ManifestEntry, error)

	// Put records an entry, replacing any previous one for the same path.
	Put(root string, entry domain.ManifestEntry) error

	// Delete forgets the entry for path.
	Delete(root, path string) error
}

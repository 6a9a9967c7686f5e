package ports

import (
	"context"

	"go.trai.ch/cachegen/internal/core/domain"
)

// SymbolOracle answers structural questions about Go source: which methods are marked,
// which classes declare them, and what those classes contain.
//
//go:generate go run go.uber.org/mock/mockgen -source=oracle.go -destination=mocks/mock_oracle.go -package=mocks
type SymbolOracle interface {
	// Load analyzes the packages matching patterns relative to cfg.Root.
	// Packages without marked methods are still returned so their stale output can be cleaned.
	Load(ctx context.Context, cfg domain.Config) ([]*domain.Compilation, error)
}

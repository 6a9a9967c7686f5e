package gotypes

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cachegen/internal/adapters/fs"
	"go.trai.ch/cachegen/internal/core/ports"
)

// NodeID is the unique identifier for the symbol oracle Graft node.
const NodeID graft.ID = "adapter.symbol_oracle"

func init() {
	graft.Register(graft.Node[ports.SymbolOracle]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID},
		Run: func(ctx context.Context) (ports.SymbolOracle, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			return New(walker), nil
		},
	})
}

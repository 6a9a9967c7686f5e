package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cachegen/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// HasherNodeID is the unique identifier for the hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
	// WriterNodeID is the unique identifier for the unit writer Graft node.
	WriterNodeID graft.ID = "adapter.fs.writer"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.UnitWriter]{
		ID:        WriterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.UnitWriter, error) {
			return NewWriter(), nil
		},
	})
}

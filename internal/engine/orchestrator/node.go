package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cachegen/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cachegen/internal/core/ports"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{telemetry.NodeID},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return New(tel), nil
		},
	})
}

package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cachegen/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/cachegen/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/cachegen/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/cachegen/internal/adapters/gotypes"   //nolint:depguard // Wired in app layer
	"go.trai.ch/cachegen/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/cachegen/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/cachegen/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/cachegen/internal/core/ports"
	"go.trai.ch/cachegen/internal/engine/orchestrator"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			gotypes.NodeID,
			orchestrator.NodeID,
			fs.WriterNodeID,
			cas.NodeID,
			fs.HasherNodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log, tel), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	oracle, err := graft.Dep[ports.SymbolOracle](ctx)
	if err != nil {
		return nil, err
	}

	orch, err := graft.Dep[*orchestrator.Orchestrator](ctx)
	if err != nil {
		return nil, err
	}

	writer, err := graft.Dep[ports.UnitWriter](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ManifestStore](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, oracle, orch, writer, store, hasher, w, log), nil
}

// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/cachegen/internal/adapters/cas"
	_ "go.trai.ch/cachegen/internal/adapters/config"
	_ "go.trai.ch/cachegen/internal/adapters/fs"
	_ "go.trai.ch/cachegen/internal/adapters/gotypes"
	_ "go.trai.ch/cachegen/internal/adapters/logger"
	_ "go.trai.ch/cachegen/internal/adapters/telemetry"
	_ "go.trai.ch/cachegen/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/cachegen/internal/app"
	_ "go.trai.ch/cachegen/internal/engine/orchestrator"
)

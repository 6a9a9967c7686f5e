package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/cachegen/internal/app"
	"go.trai.ch/cachegen/internal/core/domain"
	"go.trai.ch/cachegen/internal/core/ports/mocks"
	"go.trai.ch/cachegen/internal/engine/orchestrator"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader *mocks.MockConfigLoader
	oracle *mocks.MockSymbolOracle
	logger *mocks.MockLogger
	app    *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader: mocks.NewMockConfigLoader(ctrl),
		oracle: mocks.NewMockSymbolOracle(ctrl),
		logger: mocks.NewMockLogger(ctrl),
	}
	f.app = app.New(
		f.loader,
		f.oracle,
		orchestrator.New(mocks.NewMockTelemetry(ctrl)),
		mocks.NewMockUnitWriter(ctrl),
		mocks.NewMockManifestStore(ctrl),
		mocks.NewMockHasher(ctrl),
		mocks.NewMockWatcher(ctrl),
		f.logger,
	)
	return f
}

func (f *fixture) provider(_ context.Context) (*app.Components, func(), error) {
	return &app.Components{App: f.app, Logger: f.logger}, func() {}, nil
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	f := newFixture(t)

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, f.provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(domain.Config{}, errors.New("load failed"))
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorContains(t, err, "load failed")
	})

	exitCode := run(context.Background(), []string{"generate"}, new(bytes.Buffer), f.provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_DiagnosticsNotRelogged verifies that reported diagnostics only set the exit code.
func TestRun_DiagnosticsNotRelogged(t *testing.T) {
	f := newFixture(t)
	cfg := domain.DefaultConfig(t.TempDir())
	f.loader.EXPECT().Load(".").Return(cfg, nil)
	f.oracle.EXPECT().Load(gomock.Any(), cfg).Return(nil, domain.ErrDiagnosticsReported)

	exitCode := run(context.Background(), []string{"generate"}, new(bytes.Buffer), f.provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_AppliesOptions verifies that app options run before the command.
func TestRun_AppliesOptions(t *testing.T) {
	f := newFixture(t)
	applied := false

	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), f.provider, func(a *app.App) {
		applied = a != nil
	})
	assert.Equal(t, 0, exitCode)
	assert.True(t, applied)
}

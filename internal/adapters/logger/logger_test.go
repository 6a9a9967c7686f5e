package logger_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cachegen/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger returns a logger writing to a buffer with colors disabled.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg, ok := logger.New().(*logger.Logger)
	require.True(t, ok)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	tests := []struct {
		name       string
		msg        string
		goldenName string
	}{
		{name: "simple message", msg: "wrote user_service_cachegen.go", goldenName: "info_basic"},
		{name: "multiline message", msg: "line1\nline2", goldenName: "info_multiline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Info(tt.msg)

			goldie.New(t).Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Warn("method Find is virtual")

	goldie.New(t).Assert(t, "warn_basic", buf.Bytes())
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "simple error",
			err:        os.ErrPermission,
			goldenName: "error_simple",
		},
		{
			name:       "multiline error",
			err:        errors.New("yaml: unmarshal errors:\n  line 3: cannot unmarshal"),
			goldenName: "error_multiline",
		},
		{
			name: "zerr chain",
			err: zerr.Wrap(
				zerr.Wrap(errors.New("no such file or directory"), "failed to read config file"),
				"failed to load configuration",
			),
			goldenName: "error_chain_zerr",
		},
		{
			name: "stdlib chain",
			err: fmt.Errorf("failed to generate: %w",
				fmt.Errorf("failed to load packages: %w", errors.New("exit status 1"))),
			goldenName: "error_chain_stdlib",
		},
		{
			name: "metadata on main error",
			err: func() error {
				err := zerr.Wrap(errors.New("permission denied"), "failed to write generated file")
				err = zerr.With(err, "path", "user_cachegen.go")
				return zerr.With(err, "class", "UserService")
			}(),
			goldenName: "error_metadata_main",
		},
		{
			name: "metadata on cause",
			err: func() error {
				inner := zerr.With(zerr.New("package has type errors"), "package", "example.com/app")
				return zerr.Wrap(inner, "failed to load packages")
			}(),
			goldenName: "error_metadata_cause",
		},
		{
			name:       "metadata on plain error",
			err:        zerr.With(errors.New("disk full"), "path", "user_cachegen.go"),
			goldenName: "error_metadata_plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			goldie.New(t).Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	err := zerr.With(zerr.Wrap(errors.New("permission denied"), "failed to write generated file"), "path", "user_cachegen.go")
	lg.Error(err)

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"error"`)
	assert.Contains(t, out, "failed to write generated file")
	assert.Contains(t, out, "user_cachegen.go")
	assert.NotContains(t, out, "✗")
}

func TestLogger_FormatSwitching(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(errors.New("pretty"))
	pretty := buf.String()
	buf.Reset()

	lg.SetJSON(true)
	lg.Info("json")
	jsonOut := buf.String()
	buf.Reset()

	lg.SetJSON(false)
	lg.Error(errors.New("pretty again"))
	again := buf.String()

	assert.Contains(t, pretty, "✗ Error: pretty")
	assert.Contains(t, jsonOut, `"msg":"json"`)
	assert.Contains(t, again, "✗ Error: pretty again")
}

func TestLogger_SetOutput_Nil(t *testing.T) {
	lg, ok := logger.New().(*logger.Logger)
	require.True(t, ok)

	require.NotPanics(t, func() { lg.SetOutput(nil) })
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	lg, _ := newTestLogger(t)

	var wg sync.WaitGroup
	wg.Go(func() { lg.Info("concurrent info") })
	wg.Go(func() { lg.Warn("concurrent warn") })
	wg.Go(func() { lg.Error(errors.New("concurrent error")) })
	wg.Go(func() { lg.SetJSON(true) })
	wg.Go(func() { lg.SetJSON(false) })
	wg.Go(func() { lg.SetOutput(&bytes.Buffer{}) })
	wg.Wait()
}

package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cachegen/cmd/cachegen/commands"
	"go.trai.ch/cachegen/internal/app"
	"go.trai.ch/cachegen/internal/build"
)

type mockApp struct {
	generateFunc func(ctx context.Context, opts app.GenerateOptions) error
	cleanFunc    func(ctx context.Context, opts app.CleanOptions) error
}

func (m *mockApp) Generate(ctx context.Context, opts app.GenerateOptions) error {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Clean(ctx context.Context, opts app.CleanOptions) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, opts)
	}
	return nil
}

func TestCommands_Generate(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.GenerateOptions
		called := false

		mock := &mockApp{
			generateFunc: func(_ context.Context, opts app.GenerateOptions) error {
				captured = opts
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"generate", "./svc", "--dry-run", "--hooks", "--tags", "a,b"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, "./svc", captured.Dir)
		assert.True(t, captured.DryRun)
		assert.False(t, captured.Watch)
		require.NotNil(t, captured.Hooks)
		assert.True(t, *captured.Hooks)
		assert.Equal(t, []string{"a", "b"}, captured.Tags)
	})

	t.Run("leaves hooks to config when flag absent", func(t *testing.T) {
		var captured app.GenerateOptions
		mock := &mockApp{
			generateFunc: func(_ context.Context, opts app.GenerateOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"gen", "-w"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Nil(t, captured.Hooks)
		assert.True(t, captured.Watch)
		assert.Empty(t, captured.Dir)
	})

	t.Run("rejects dry run with watch", func(t *testing.T) {
		cli := commands.New(&mockApp{})
		cli.SetArgs([]string{"generate", "--dry-run", "--watch"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		require.Error(t, cli.Execute(context.Background()))
	})

	t.Run("returns error on generate failure", func(t *testing.T) {
		mock := &mockApp{
			generateFunc: func(_ context.Context, _ app.GenerateOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"generate"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("switches logs to json", func(t *testing.T) {
		jsonLogs := false
		cli := commands.New(&mockApp{}, commands.WithJSONLogging(func(enable bool) {
			jsonLogs = enable
		}))
		cli.SetArgs([]string{"generate", "--json"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.True(t, jsonLogs)
	})
}

func TestCommands_Clean(t *testing.T) {
	var captured app.CleanOptions
	mock := &mockApp{
		cleanFunc: func(_ context.Context, opts app.CleanOptions) error {
			captured = opts
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"clean", "--force", "./svc"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, captured.Force)
	assert.Equal(t, "./svc", captured.Dir)
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "cachegen version "+build.Version)
}

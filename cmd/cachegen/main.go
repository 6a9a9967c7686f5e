// Package main is the entry point for the cachegen generator.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/cachegen/cmd/cachegen/commands"
	"go.trai.ch/cachegen/internal/app"
	"go.trai.ch/cachegen/internal/core/domain"
	_ "go.trai.ch/cachegen/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

type jsonToggler interface {
	SetJSON(enable bool)
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.Close() }, nil
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	if cleanup != nil {
		defer cleanup()
	}

	// Apply options
	for _, opt := range opts {
		opt(components.App)
	}

	// 2. Interface - CLI
	var cliOpts []commands.Option
	if t, ok := components.Logger.(jsonToggler); ok {
		cliOpts = append(cliOpts, commands.WithJSONLogging(t.SetJSON))
	}
	cli := commands.New(components.App, cliOpts...)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrDiagnosticsReported) {
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}

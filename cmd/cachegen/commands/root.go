// Package commands implements the CLI commands for the cachegen generator.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/cachegen/internal/app"
	"go.trai.ch/cachegen/internal/build"
)

// CLI represents the command line interface for cachegen.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	setJSON func(bool)
}

// Application represents the application logic interface.
type Application interface {
	Generate(ctx context.Context, opts app.GenerateOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
}

// Option configures the CLI.
type Option func(*CLI)

// WithJSONLogging registers the function that switches log output to JSON.
func WithJSONLogging(fn func(bool)) Option {
	return func(c *CLI) {
		c.setJSON = fn
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "cachegen",
		Short:         "Generate caching wrappers for marked Go methods",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().Bool("json", false, "Emit logs as JSON")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		jsonLogs, _ := cmd.Flags().GetBool("json")
		if jsonLogs && c.setJSON != nil {
			c.setJSON(true)
		}
	}

	rootCmd.AddCommand(c.newGenerateCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func dirArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/cachegen/internal/app"
)

func (c *CLI) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate [dir]",
		Aliases: []string{"gen"},
		Short:   "Generate caching wrappers for the configured packages",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			watch, _ := cmd.Flags().GetBool("watch")
			tags, _ := cmd.Flags().GetStringSlice("tags")

			opts := app.GenerateOptions{
				Dir:    dirArg(args),
				DryRun: dryRun,
				Watch:  watch,
				Tags:   tags,
			}
			if cmd.Flags().Changed("hooks") {
				hooks, _ := cmd.Flags().GetBool("hooks")
				opts.Hooks = &hooks
			}

			return c.app.Generate(cmd.Context(), opts)
		},
	}
	cmd.Flags().BoolP("dry-run", "n", false, "Print generated sources instead of writing them")
	cmd.Flags().BoolP("watch", "w", false, "Regenerate whenever sources change")
	cmd.Flags().Bool("hooks", false, "Emit observation hooks for every wrapper")
	cmd.Flags().StringSlice("tags", nil, "Build tags used when loading packages")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "watch")
	return cmd
}

package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/cachegen/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [dir]",
		Short: "Remove every generated file recorded in the manifest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			return c.app.Clean(cmd.Context(), app.CleanOptions{
				Dir:   dirArg(args),
				Force: force,
			})
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Remove files even if they were edited after generation")

	return cmd
}

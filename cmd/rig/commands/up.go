package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/rig/internal/app"
)

func (c *CLI) newUpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Provision the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobs, _ := cmd.Flags().GetInt("jobs")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			quiet, _ := cmd.Flags().GetBool("quiet")
			watch, _ := cmd.Flags().GetBool("watch")

			return c.app.Run(cmd.Context(), app.RunOptions{
				Jobs:    jobs,
				NoCache: noCache,
				Quiet:   quiet,
				Watch:   watch,
			})
		},
	}
	cmd.Flags().IntP("jobs", "j", 1, "Number of steps to run in parallel")
	cmd.Flags().Bool("no-cache", false, "Bypass receipts and force every step to run")
	cmd.Flags().BoolP("quiet", "q", false, "Hide streamed subprocess output")
	cmd.Flags().Bool("watch", false, "Re-run the plan when workspace files change")
	return cmd
}

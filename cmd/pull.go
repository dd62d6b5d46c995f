package cmd

import (
	"fmt"

	"github.com/confect-dev/confect/internal/ui"
	"github.com/confect-dev/confect/internal/workflows"

	"github.com/spf13/cobra"
)

var pullRestore bool

func init() {
	pullCmd.Flags().BoolVarP(&pullRestore, "restore", "r", false, "also restore files after pulling (existing files are backed up)")
}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Fast-forward the repository from its remote",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting pull command")

		env, err := openEnv()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		s, cleanup := startSpinner(out, "Pulling from remote...")
		result, err := workflows.Pull(cmd.Context(), env, workflows.PullOptions{Restore: pullRestore})
		if result != nil {
			s.FinalMSG = ui.Success.Sprint("✓") + " Pulled latest changes"
		}
		cleanup()
		if err != nil {
			return err
		}

		if result.Restore != nil {
			return printRestoreResult(out, result.Restore)
		}
		fmt.Fprintln(out, ui.Info.Sprint("→")+" Run "+ui.Code.Sprint("confect restore")+" to apply them to the system")
		return nil
	},
}

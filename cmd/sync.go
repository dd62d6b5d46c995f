package cmd

import (
	"errors"
	"fmt"

	kerrors "github.com/confect-dev/confect/internal/errors"
	"github.com/confect-dev/confect/internal/ui"
	"github.com/confect-dev/confect/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	syncMessage string
	syncNoPush  bool
)

func init() {
	syncCmd.Flags().StringVarP(&syncMessage, "message", "m", "", "commit message (default: generated from the changes)")
	syncCmd.Flags().BoolVar(&syncNoPush, "no-push", false, "commit without pushing")
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Copy system changes into the repository and commit them",
	Long: `Refreshes every repository copy from the system, recaptures metadata,
commits the result and pushes it when a remote is configured and
auto_push is enabled.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting sync command")

		env, err := openEnv()
		if err != nil {
			return err
		}

		s, cleanup := startSpinner(cmd.OutOrStdout(), "Syncing tracked files...")
		defer cleanup()

		result, err := workflows.Sync(cmd.Context(), env, workflows.SyncOptions{
			Message: syncMessage,
			NoPush:  syncNoPush,
		})
		if errors.Is(err, kerrors.ErrNoChanges) {
			s.FinalMSG = ui.Success.Sprint("✓") + " Nothing to sync"
			return nil
		}
		if err != nil {
			if result != nil && result.Committed {
				s.FinalMSG = ui.Success.Sprint("✓") + " Committed " + ui.Code.Sprint(result.Message)
			}
			return err
		}

		msg := ui.Success.Sprint("✓")
		if result.Committed {
			msg += fmt.Sprintf(" Committed %s: %s", plural(result.Changes, "change"), ui.Code.Sprint(result.Message))
		} else {
			msg += " No new changes"
		}
		if result.Pushed {
			msg += "\n  Pushed to " + result.Remote
		}
		s.FinalMSG = msg
		return nil
	},
}

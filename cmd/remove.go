package cmd

import (
	"fmt"

	"github.com/confect-dev/confect/internal/ui"
	"github.com/confect-dev/confect/internal/workflows"

	"github.com/spf13/cobra"
)

var removeDelete bool

func init() {
	removeCmd.Flags().BoolVar(&removeDelete, "delete", false, "also delete the repository copy")
}

var removeCmd = &cobra.Command{
	Use:   "remove <path>",
	Short: "Stop tracking a file or directory",
	Long: `Unregisters a path from its category and forgets its metadata.
The repository copy is kept unless --delete is given. System files are
never touched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting remove command")

		env, err := openEnv()
		if err != nil {
			return err
		}

		result, err := workflows.Remove(cmd.Context(), env, workflows.RemoveOptions{
			Path:   args[0],
			Delete: removeDelete,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s Removed %s from %s\n", ui.Success.Sprint("✓"), plural(len(result.Files), "file"), ui.Category.Sprint(result.Category))
		if result.Excluded {
			fmt.Fprintln(out, "  Added an exclude pattern so the path stays untracked")
		}
		if result.Deleted {
			fmt.Fprintln(out, "  Deleted the repository copy")
		}
		return nil
	},
}

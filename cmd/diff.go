package cmd

import (
	"fmt"

	"github.com/confect-dev/confect/internal/ui"
	"github.com/confect-dev/confect/internal/workflows"

	"github.com/spf13/cobra"
)

var diffCategory string

func init() {
	diffCmd.Flags().StringVarP(&diffCategory, "category", "c", "", "limit to one category")
}

var diffCmd = &cobra.Command{
	Use:   "diff [file]",
	Short: "Show line differences between system files and their repository copies",
	Long: `Prints a positional diff: line i of the system file is compared with
line i of the repository copy. Without a file, every modified file in scope
is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting diff command")

		env, err := openEnv()
		if err != nil {
			return err
		}

		opts := workflows.DiffOptions{Category: diffCategory}
		if len(args) == 1 {
			opts.File = args[0]
		}

		diffs, err := workflows.Diff(cmd.Context(), env, opts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(diffs) == 0 {
			fmt.Fprintln(out, ui.Success.Sprint("✓")+" No differences")
			return nil
		}
		for _, d := range diffs {
			printDiff(out, d.Diff)
		}
		return nil
	},
}

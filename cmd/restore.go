package cmd

import (
	"fmt"
	"io"

	"github.com/confect-dev/confect/internal/configs"
	"github.com/confect-dev/confect/internal/ui"
	"github.com/confect-dev/confect/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	restoreCategory string
	restoreDryRun   bool
	restoreBackup   bool
)

func init() {
	restoreCmd.Flags().StringVarP(&restoreCategory, "category", "c", "", "restore one category")
	restoreCmd.Flags().BoolVar(&restoreDryRun, "dry-run", false, "list the files without writing them")
	restoreCmd.Flags().BoolVar(&restoreBackup, "backup", false, "save existing files as <path>"+configs.BackupSuffix+" first")
}

var restoreCmd = &cobra.Command{
	Use:   "restore [file]",
	Short: "Write repository copies back onto the system",
	Long: `Restores one file, one category or every tracked file from the
repository, then applies the recorded ownership and permissions.

A failed item does not stop the others. Every failure is listed at the end
and the command exits non-zero.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting restore command")

		env, err := openEnv()
		if err != nil {
			return err
		}

		opts := workflows.RestoreOptions{
			Category: restoreCategory,
			DryRun:   restoreDryRun,
			Backup:   restoreBackup,
		}
		if len(args) == 1 {
			opts.File = args[0]
		}

		out := cmd.OutOrStdout()
		result, err := workflows.Restore(cmd.Context(), env, opts)
		if err != nil {
			return err
		}

		if result.DryRun {
			printRestoreDryRun(out, result)
			return nil
		}
		return printRestoreResult(out, result)
	},
}

func printRestoreDryRun(out io.Writer, result *workflows.RestoreResult) {
	fmt.Fprintln(out, ui.Warning.Sprint("[dry-run]")+" Would restore "+plural(len(result.Files), "file")+":")
	existing := make(map[string]bool, len(result.Existing))
	for _, p := range result.Existing {
		existing[p] = true
	}
	for _, p := range result.Files {
		line := "  " + ui.Path.Sprint(p)
		if existing[p] {
			line += " " + ui.Muted.Sprint("overwrite")
		}
		fmt.Fprintln(out, line)
	}
}

func printRestoreResult(out io.Writer, result *workflows.RestoreResult) error {
	for _, b := range result.Backups {
		fmt.Fprintln(out, "  Backed up "+ui.Path.Sprint(b))
	}

	fmt.Fprintf(out, "%s Restored %s\n", ui.Success.Sprint("✓"), plural(len(result.Restored), "file"))

	if len(result.MetadataFailures) > 0 {
		fmt.Fprintf(out, "%s Content restored but attributes not applied for %s:\n", ui.Warning.Sprint("⚠"), plural(len(result.MetadataFailures), "file"))
		printFailures(out, result.MetadataFailures)
	}
	if len(result.Failures) > 0 {
		fmt.Fprintf(out, "%s Failed to restore %s:\n", ui.Error.Sprint("✗"), plural(len(result.Failures), "file"))
		printFailures(out, result.Failures)
	}

	if failed := len(result.Failures) + len(result.MetadataFailures); failed > 0 {
		return fmt.Errorf("restore finished with %d failures", failed)
	}
	return nil
}

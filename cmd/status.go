package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/confect-dev/confect/internal/ui"
	"github.com/confect-dev/confect/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	statusCategory string
	statusDiff     bool
	statusJSON     bool
)

func init() {
	statusCmd.Flags().StringVarP(&statusCategory, "category", "c", "", "limit to one category")
	statusCmd.Flags().BoolVar(&statusDiff, "diff", false, "show a diff for modified files")
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output in JSON format")
}

type statusJSONFile struct {
	Path     string `json:"path"`
	Category string `json:"category"`
	Status   string `json:"status"`
	Diff     string `json:"diff,omitempty"`
}

type statusJSONOutput struct {
	Files   []statusJSONFile `json:"files"`
	Summary map[string]int   `json:"summary"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show tracked files that differ from the repository",
	Long: `Compares every tracked system file with its repository copy.

Each differing file has one of four statuses:
  M modified:  both copies exist with different content
  A added:     the file matches a category but has no repository copy
  D deleted:   the repository copy exists but the system file is gone
  ? missing:   a literal pattern names a file that exists nowhere`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting status command")

		env, err := openEnv()
		if err != nil {
			return err
		}

		result, err := workflows.Status(cmd.Context(), env, workflows.StatusOptions{
			Category: statusCategory,
			Diff:     statusDiff,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if statusJSON {
			return outputStatusJSON(out, result)
		}
		printStatus(out, result)
		return nil
	},
}

func outputStatusJSON(out io.Writer, result *workflows.StatusResult) error {
	output := statusJSONOutput{
		Files: []statusJSONFile{},
		Summary: map[string]int{
			"modified": result.Summary.Modified,
			"added":    result.Summary.Added,
			"deleted":  result.Summary.Deleted,
			"missing":  result.Summary.Missing,
		},
	}
	for _, f := range result.Files {
		output.Files = append(output.Files, statusJSONFile{
			Path:     f.Path,
			Category: f.Category,
			Status:   f.Status.String(),
			Diff:     f.Diff,
		})
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func printStatus(out io.Writer, result *workflows.StatusResult) {
	if result.Summary.Total() == 0 {
		fmt.Fprintln(out, ui.Success.Sprint("✓")+" All tracked files are in sync")
		return
	}

	for _, f := range result.Files {
		fmt.Fprintf(out, "%s %s %s\n", ui.Marker(f.Status.String()), ui.Path.Sprint(f.Path), ui.Muted.Sprint(f.Category))
		if f.Diff != "" {
			printDiff(out, f.Diff)
		}
	}

	s := result.Summary
	fmt.Fprintf(out, "\n%d modified, %d added, %d deleted, %d missing\n", s.Modified, s.Added, s.Deleted, s.Missing)
	fmt.Fprintln(out, ui.Info.Sprint("→")+" Run "+ui.Code.Sprint("confect sync")+" to commit or "+ui.Code.Sprint("confect restore")+" to revert")
}

func printDiff(out io.Writer, diff string) {
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		fmt.Fprintln(out, ui.DiffLine(line))
	}
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/confect-dev/confect/internal/audit"
	"github.com/confect-dev/confect/internal/ui"
	"github.com/confect-dev/confect/internal/workflows"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logOperation string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays who ran which operation, on which host and when.

Examples:
  confect log -n 10 --reverse
  confect log --operation sync,restore`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}

		opts := workflows.LogOptions{Limit: logLimit, Reverse: logReverse}
		if logOperation != "" {
			opts.Operations = strings.Split(logOperation, ",")
		}

		entries, err := workflows.Log(cmd.Context(), env, opts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if logJSON {
			if entries == nil {
				entries = []audit.Entry{}
			}
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(entries)
		}

		if len(entries) == 0 {
			fmt.Fprintln(out, "No audit log entries found.")
			return nil
		}
		for _, e := range entries {
			printLogEntry(out, e)
		}
		return nil
	},
}

func printLogEntry(out io.Writer, e audit.Entry) {
	details := ""
	switch {
	case e.Message != "":
		details = e.Message
	case len(e.Files) > 0:
		details = strings.Join(e.Files, ", ")
	case e.FilesCount > 0:
		details = plural(e.FilesCount, "file")
	}
	if e.Category != "" {
		details = strings.TrimSpace(ui.Category.Sprint(e.Category) + " " + details)
	}
	if e.Failures > 0 {
		details += " " + ui.Error.Sprintf("(%d failed)", e.Failures)
	}

	fmt.Fprintf(out, "%s  %-8s %s@%s  %s\n", formatTimestamp(e.Timestamp), e.Operation, e.User, e.Host, details)
}

// formatTimestamp shortens an RFC3339 timestamp and appends its age.
func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05") + " " + ui.Muted.Sprint(humanize.Time(t))
}

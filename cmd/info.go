package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/confect-dev/confect/internal/ui"
	"github.com/confect-dev/confect/internal/workflows"

	"github.com/spf13/cobra"
)

var infoJSON bool

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "output in JSON format")
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show repository information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting info command")

		env, err := openEnv()
		if err != nil {
			return err
		}

		info, err := workflows.Info(cmd.Context(), env)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if infoJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(info)
		}
		printInfo(out, info)
		return nil
	},
}

func printInfo(out io.Writer, info *workflows.InfoResult) {
	fmt.Fprintln(out, ui.Heading.Sprint("Repository"))
	fmt.Fprintln(out, "  Path:       "+ui.Path.Sprint(info.Path))
	if info.ID != "" {
		fmt.Fprintln(out, "  ID:         "+info.ID)
	}
	fmt.Fprintln(out, "  Host:       "+info.Host)
	if info.Branch != "" {
		fmt.Fprintln(out, "  Branch:     "+ui.Code.Sprint(info.Branch))
	}
	if len(info.Remotes) > 0 {
		fmt.Fprintln(out, "  Remotes:    "+strings.Join(info.Remotes, ", "))
	}
	fmt.Fprintf(out, "  Auto push:  %t\n", info.AutoPush)
	fmt.Fprintf(out, "  Encryption: %t\n", info.Encryption)

	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.Heading.Sprint("Categories"))
	if len(info.Categories) == 0 {
		fmt.Fprintln(out, "  none")
	}
	if len(info.Categories) > 0 {
		rows := make([][]string, 0, len(info.Categories))
		for _, c := range info.Categories {
			rows = append(rows, []string{c.Name, strconv.Itoa(c.Files)})
		}
		ui.PrintTable(out, []string{"Name", "Files"}, rows)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s tracked, %s changed\n", plural(info.TotalFiles, "file"), plural(info.ChangedFiles, "file"))
}

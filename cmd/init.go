package cmd

import (
	"fmt"

	"github.com/confect-dev/confect/internal/ui"
	"github.com/confect-dev/confect/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	initPath   string
	initRemote string
	initHost   string
)

func init() {
	initCmd.Flags().StringVar(&initPath, "path", "", "repository location (default from config)")
	initCmd.Flags().StringVar(&initRemote, "remote", "", "git remote URL to push to")
	initCmd.Flags().StringVar(&initHost, "host", "", "host name used for the branch (default: system host name)")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new confect repository",
	Long: `Creates the repository layout, initializes git, makes the first commit
and switches to a host/<host> branch.

The global config is written on first use so later commands find the
repository.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}

		result, err := workflows.Init(cmd.Context(), cfg, workflows.InitOptions{
			Path:       initPath,
			Remote:     initRemote,
			Host:       initHost,
			ConfigPath: path,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Success.Sprint("✓")+" Initialized confect repository at "+ui.Path.Sprint(result.Path))
		fmt.Fprintln(out, "  Branch: "+ui.Code.Sprint(result.Branch))
		if result.Remote != "" {
			fmt.Fprintln(out, "  Remote: "+result.Remote)
		}
		if result.ConfigWritten {
			fmt.Fprintln(out, "  Config: "+ui.Path.Sprint(path))
		}
		fmt.Fprintln(out, ui.Info.Sprint("→")+" Track files with "+ui.Code.Sprint("confect add <path>"))
		return nil
	},
}

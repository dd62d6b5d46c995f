package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/confect-dev/confect/internal/configs"
	kerrors "github.com/confect-dev/confect/internal/errors"
	logger "github.com/confect-dev/confect/internal/logging"
	"github.com/confect-dev/confect/internal/ui"
	"github.com/confect-dev/confect/internal/workflows"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose    bool
	debug      bool
	configPath string
	Logger     logger.Logger

	// RootCmd is the confect entry point.
	RootCmd = &cobra.Command{
		Use:   "confect",
		Short: "Track system configuration files in git",
		Long: `confect copies system configuration files into a git repository,
grouped into named categories, together with their ownership and permissions.

Files matching encryption patterns are stored as age envelopes.

Examples:
  # Create the repository
  confect init --remote git@example.com:me/configs.git

  # Track nginx under its own category
  confect add /etc/nginx -c nginx --create

  # See what drifted and commit it
  confect status --diff
  confect sync`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			banner := figure.NewFigure("confect", "", true)
			fmt.Fprint(out, ui.Success.Sprint(banner.String()))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Run "+ui.Code.Sprint("confect --help")+" to see available commands.")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the global config file")

	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(addCmd)
	RootCmd.AddCommand(removeCmd)
	RootCmd.AddCommand(statusCmd)
	RootCmd.AddCommand(diffCmd)
	RootCmd.AddCommand(syncCmd)
	RootCmd.AddCommand(restoreCmd)
	RootCmd.AddCommand(pullCmd)
	RootCmd.AddCommand(categoryCmd)
	RootCmd.AddCommand(keygenCmd)
	RootCmd.AddCommand(infoCmd)
	RootCmd.AddCommand(logCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗")+" "+err.Error())
	switch {
	case errors.Is(err, kerrors.ErrNotInitialized):
		fmt.Fprintln(os.Stderr, ui.Info.Sprint("→")+" Run "+ui.Code.Sprint("confect init")+" first")
	case errors.Is(err, kerrors.ErrPermissionDenied):
		fmt.Fprintln(os.Stderr, ui.Info.Sprint("→")+" Ownership changes need root")
	}
}

// resolveConfigPath returns the --config flag or the default global path.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return configs.GlobalPath()
}

func loadConfig() (*configs.Config, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}
	Logger.Debugf("Loading config from %s", path)
	return configs.LoadFrom(path)
}

// openEnv loads the global config and opens the repository it points to.
func openEnv() (*workflows.Env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	Logger.Debugf("Opening repository at %s", cfg.RepoPath())
	return workflows.Open(cfg, Logger)
}

// ResetGlobalState resets flag variables and cobra flag state between tests.
func ResetGlobalState() {
	verbose = false
	debug = false
	configPath = ""
	Logger = logger.Logger{}
	resetCobraFlagState(RootCmd)
}

// resetCobraFlagState restores every flag of cmd and its children to its
// default. Flag variables are bound, so this also resets them.
func resetCobraFlagState(cmd *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		flag.Changed = false
		_ = flag.Value.Set(flag.DefValue)
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetCobraFlagState(child)
	}
}

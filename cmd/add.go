package cmd

import (
	"fmt"

	"github.com/confect-dev/confect/internal/ui"
	"github.com/confect-dev/confect/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	addCategory string
	addCreate   bool
	addEncrypt  bool
)

func init() {
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "category to track the path under")
	addCmd.Flags().BoolVar(&addCreate, "create", false, "create the category if it does not exist")
	addCmd.Flags().BoolVar(&addEncrypt, "encrypt", false, "store the repository copies encrypted")
}

var addCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Track a file or directory",
	Long: `Copies a file or directory into the repository and records its
ownership and permissions.

Without --category the path goes to the category whose patterns already
match it, or to the "default" category.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting add command")
		out := cmd.OutOrStdout()

		env, err := openEnv()
		if err != nil {
			return err
		}

		s, cleanup := startSpinner(out, "Adding "+args[0]+"...")
		defer cleanup()

		result, err := workflows.Add(cmd.Context(), env, workflows.AddOptions{
			Path:           args[0],
			Category:       addCategory,
			CreateCategory: addCreate,
			Encrypt:        addEncrypt,
		})
		if err != nil {
			return err
		}

		msg := ui.Success.Sprint("✓") + fmt.Sprintf(" Added %s to %s", plural(len(result.Files), "file"), ui.Category.Sprint(result.Category))
		if result.CreatedCategory {
			msg += " " + ui.Muted.Sprint("new category")
		}
		if result.Encrypted {
			msg += " " + ui.Muted.Sprint("encrypted")
		}
		if result.Unconventional {
			msg += "\n" + ui.Warning.Sprint("⚠") + " Path is outside /etc and /var"
		}
		s.FinalMSG = msg
		return nil
	},
}

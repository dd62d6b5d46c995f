package cmd

import (
	"fmt"

	"github.com/confect-dev/confect/internal/ui"
	"github.com/confect-dev/confect/internal/workflows"

	"github.com/spf13/cobra"
)

var keygenOutput string

func init() {
	keygenCmd.Flags().StringVarP(&keygenOutput, "output", "o", "", "identity file to write (default: identity.txt next to the config)")
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate an age identity and enable encryption",
	Long: `Writes a new age X25519 identity with mode 0600 and records its public
key and path in the global config.

Keep the identity file out of the repository. Without it, encrypted
copies cannot be restored.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting keygen command")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}

		result, err := workflows.Keygen(cmd.Context(), cfg, workflows.KeygenOptions{
			Output:     keygenOutput,
			ConfigPath: path,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Success.Sprint("✓")+" Wrote identity to "+ui.Path.Sprint(result.IdentityFile))
		fmt.Fprintln(out, "  Public key: "+ui.Code.Sprint(result.Recipient))
		if result.ConfigUpdated {
			fmt.Fprintln(out, "  Encryption enabled in "+ui.Path.Sprint(path))
		}
		fmt.Fprintln(out, ui.Warning.Sprint("⚠")+" Back up the identity file. Encrypted files cannot be restored without it.")
		return nil
	},
}

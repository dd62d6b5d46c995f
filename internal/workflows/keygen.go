package workflows

import (
	"context"
	"path/filepath"

	"github.com/confect-dev/confect/internal/configs"
	"github.com/confect-dev/confect/internal/secrets"
)

// KeygenOptions configures the keygen workflow.
type KeygenOptions struct {
	// Output is where the identity is written. Defaults to identity.txt
	// next to the global config.
	Output string

	// ConfigPath is the global config to update. Empty leaves config alone.
	ConfigPath string
}

// KeygenResult contains the outcome of a keygen operation.
type KeygenResult struct {
	// IdentityFile is the absolute path of the new identity.
	IdentityFile string

	// Recipient is the public key to share with other hosts.
	Recipient string

	// ConfigUpdated is true when encryption was enabled in the config.
	ConfigUpdated bool
}

// Keygen creates an age identity and, when a config path is given, enables
// encryption with it.
//
// Returns ErrAlreadyExists if the identity file already exists.
func Keygen(ctx context.Context, cfg *configs.Config, opts KeygenOptions) (*KeygenResult, error) {
	output := opts.Output
	if output == "" {
		output = filepath.Join(filepath.Dir(opts.ConfigPath), "identity.txt")
	}
	output, err := filepath.Abs(output)
	if err != nil {
		return nil, err
	}

	recipient, err := secrets.WriteKeypair(output)
	if err != nil {
		return nil, err
	}

	result := &KeygenResult{IdentityFile: output, Recipient: recipient}

	if opts.ConfigPath != "" {
		cfg.Encryption.Enabled = true
		cfg.Encryption.PublicKey = recipient
		cfg.Encryption.IdentityFile = output
		if err := cfg.Save(opts.ConfigPath); err != nil {
			return nil, err
		}
		result.ConfigUpdated = true
	}

	return result, nil
}

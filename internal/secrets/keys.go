package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	kerrors "github.com/confect-dev/confect/internal/errors"

	"filippo.io/age"
	"filippo.io/age/agessh"
	"golang.org/x/crypto/ssh"
)

// GenerateKeypair creates a new X25519 identity and returns it along with
// its public recipient string.
func GenerateKeypair() (identity string, recipient string, err error) {
	id, err := age.GenerateX25519Identity()
	if err != nil {
		return "", "", fmt.Errorf("%w: generating identity: %v", kerrors.ErrEncryptionFailure, err)
	}
	return id.String(), id.Recipient().String(), nil
}

// WriteKeypair generates a keypair, stores the identity at identityPath and
// returns the recipient. An existing file is never overwritten.
func WriteKeypair(identityPath string) (string, error) {
	if _, err := os.Stat(identityPath); err == nil {
		return "", fmt.Errorf("identity file %s %w", identityPath, kerrors.ErrAlreadyExists)
	}

	identity, recipient, err := GenerateKeypair()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(identityPath), 0700); err != nil {
		return "", kerrors.IO("creating directory for", identityPath, err)
	}

	content := fmt.Sprintf("# created: %s\n# public key: %s\n%s\n",
		time.Now().Format(time.RFC3339), recipient, identity)

	if err := os.WriteFile(identityPath, []byte(content), 0600); err != nil {
		return "", kerrors.IO("writing identity", identityPath, err)
	}
	return recipient, nil
}

// ParseIdentity parses an AGE-SECRET-KEY string or an unencrypted OpenSSH
// private key in PEM form.
func ParseIdentity(s string) (Identity, error) {
	trimmed := strings.TrimSpace(s)

	if strings.HasPrefix(trimmed, "-----BEGIN") {
		id, err := agessh.ParseIdentity([]byte(trimmed + "\n"))
		if err != nil {
			var missing *ssh.PassphraseMissingError
			if errors.As(err, &missing) {
				return nil, fmt.Errorf("%w: passphrase-protected SSH keys are not supported", kerrors.ErrDecryptionFailure)
			}
			return nil, fmt.Errorf("%w: invalid SSH identity: %v", kerrors.ErrDecryptionFailure, err)
		}
		return id, nil
	}

	ids, err := age.ParseIdentities(strings.NewReader(trimmed))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid identity: %v", kerrors.ErrDecryptionFailure, err)
	}
	return ids[0], nil
}

// LoadIdentityFile reads an identity from path.
func LoadIdentityFile(path string) (Identity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, kerrors.IO("reading identity", path, err)
	}
	return ParseIdentity(string(data))
}

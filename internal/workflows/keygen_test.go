package workflows

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/confect-dev/confect/internal/configs"
	kerrors "github.com/confect-dev/confect/internal/errors"
	logger "github.com/confect-dev/confect/internal/logging"
	"github.com/confect-dev/confect/internal/secrets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeygenEnablesEncryption(t *testing.T) {
	ctx := context.Background()
	configPath := filepath.Join(t.TempDir(), "config.toml")
	cfg := configs.Default()

	result, err := Keygen(ctx, cfg, KeygenOptions{ConfigPath: configPath})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(configPath), "identity.txt"), result.IdentityFile)
	assert.True(t, result.ConfigUpdated)
	assert.Contains(t, result.Recipient, "age1")

	saved, err := configs.LoadFrom(configPath)
	require.NoError(t, err)
	assert.True(t, saved.Encryption.Enabled)
	assert.Equal(t, result.Recipient, saved.Encryption.PublicKey)
	assert.Equal(t, result.IdentityFile, saved.Encryption.IdentityFile)

	_, err = Keygen(ctx, cfg, KeygenOptions{ConfigPath: configPath})
	assert.ErrorIs(t, err, kerrors.ErrAlreadyExists)
}

func TestEncryptedAddStatusRestore(t *testing.T) {
	ctx := context.Background()
	configPath := filepath.Join(t.TempDir(), "config.toml")
	cfg := configs.Default()
	cfg.Global.AutoPush = false
	_, err := Keygen(ctx, cfg, KeygenOptions{ConfigPath: configPath})
	require.NoError(t, err)

	root := t.TempDir()
	writeFile(t, filepath.Join(configs.Dir(root), configs.CategoriesFile), "[categories]\n")
	cfg.Global.RepoPath = root

	env, err := Open(cfg, logger.Logger{})
	require.NoError(t, err)
	require.NotNil(t, env.Codec)
	require.NotNil(t, env.Identity)

	system := t.TempDir()
	secret := filepath.Join(system, "etc", "secret.key")
	writeFile(t, secret, "top secret\n")

	added, err := Add(ctx, env, AddOptions{Path: secret, Category: "keys", CreateCategory: true, Encrypt: true})
	require.NoError(t, err)
	assert.True(t, added.Encrypted)

	repoCopy := env.Reconciler.RepoFile(mustCategory(t, env, "keys"), secret)
	assert.True(t, secrets.IsEncrypted(repoCopy))
	assert.NotContains(t, readFile(t, repoCopy), "top secret")

	status, err := Status(ctx, env, StatusOptions{})
	require.NoError(t, err)
	assert.Empty(t, status.Files)

	writeFile(t, secret, "leaked\n")
	restored, err := Restore(ctx, env, RestoreOptions{File: secret})
	require.NoError(t, err)
	assert.Equal(t, []string{secret}, restored.Restored)
	assert.Equal(t, "top secret\n", readFile(t, secret))
}

func TestEncryptRequiresEncryptionEnabled(t *testing.T) {
	env, system := newTestEnv(t)
	path := filepath.Join(system, "etc", "secret")
	writeFile(t, path, "x")

	_, err := Add(context.Background(), env, AddOptions{Path: path, Encrypt: true})
	assert.ErrorIs(t, err, kerrors.ErrEncryptionFailure)
}

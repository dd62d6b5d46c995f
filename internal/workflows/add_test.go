package workflows

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/confect-dev/confect/internal/audit"
	"github.com/confect-dev/confect/internal/category"
	"github.com/confect-dev/confect/internal/configs"
	kerrors "github.com/confect-dev/confect/internal/errors"
	logger "github.com/confect-dev/confect/internal/logging"
	"github.com/confect-dev/confect/internal/metadata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenNotInitialized(t *testing.T) {
	cfg := configs.Default()
	cfg.Global.RepoPath = t.TempDir()

	_, err := Open(cfg, logger.Logger{})
	assert.ErrorIs(t, err, kerrors.ErrNotInitialized)
}

func TestAddCreatesDefaultCategory(t *testing.T) {
	env, system := newTestEnv(t)
	path := filepath.Join(system, "opt", "app.conf")
	writeFile(t, path, "key=value\n")

	result, err := Add(context.Background(), env, AddOptions{Path: path})
	require.NoError(t, err)

	assert.Equal(t, DefaultCategory, result.Category)
	assert.True(t, result.CreatedCategory)
	assert.True(t, result.Unconventional)
	assert.Equal(t, []string{path}, result.Files)

	registry, err := category.LoadRegistry(env.Root)
	require.NoError(t, err)
	c, err := registry.Get(DefaultCategory)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, c.Paths)

	store, err := metadata.LoadStore(env.Root)
	require.NoError(t, err)
	_, ok := store.Get(path)
	assert.True(t, ok)

	assert.Equal(t, "key=value\n", readFile(t, filepath.Join(env.Root, DefaultCategory, path[1:])))

	entries, err := audit.ReadEntries(env.Root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "add", entries[0].Operation)
	assert.Equal(t, []string{path}, entries[0].Files)
}

func TestAddDirectoryRegistersRecursivePattern(t *testing.T) {
	env, system := newTestEnv(t)
	dir := filepath.Join(system, "etc", "nginx")
	writeFile(t, filepath.Join(dir, "nginx.conf"), "events {}\n")
	writeFile(t, filepath.Join(dir, "sites", "default"), "server {}\n")

	result, err := Add(context.Background(), env, AddOptions{Path: dir, Category: "nginx", CreateCategory: true})
	require.NoError(t, err)
	assert.True(t, result.CreatedCategory)
	assert.Len(t, result.Files, 2)

	c, err := env.Registry.Get("nginx")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "**")}, c.Paths)

	// A later file under the directory goes to the same category.
	later := filepath.Join(dir, "conf.d", "gzip.conf")
	writeFile(t, later, "gzip on;\n")
	result, err = Add(context.Background(), env, AddOptions{Path: later})
	require.NoError(t, err)
	assert.Equal(t, "nginx", result.Category)
	assert.False(t, result.CreatedCategory)
}

func TestAddUnknownCategory(t *testing.T) {
	env, system := newTestEnv(t)
	path := filepath.Join(system, "etc", "hosts")
	writeFile(t, path, "127.0.0.1 localhost\n")

	_, err := Add(context.Background(), env, AddOptions{Path: path, Category: "network"})
	assert.ErrorIs(t, err, kerrors.ErrNotFound)

	_, err = Add(context.Background(), env, AddOptions{Path: path, Category: ".hidden", CreateCategory: true})
	assert.ErrorIs(t, err, kerrors.ErrInvalidName)
}

func TestAddMissingPath(t *testing.T) {
	env, system := newTestEnv(t)

	_, err := Add(context.Background(), env, AddOptions{Path: filepath.Join(system, "nope")})
	assert.ErrorIs(t, err, kerrors.ErrFileNotFound)
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		path           string
		forbidden      bool
		unconventional bool
	}{
		{"/", true, false},
		{"/root", true, false},
		{"/home", true, false},
		{"/boot", true, false},
		{"/dev", true, false},
		{"/proc", true, false},
		{"/sys", true, false},
		{"/run", true, false},
		{"/etc", false, false},
		{"/etc/nginx/nginx.conf", false, false},
		{"/var/lib/app/state", false, false},
		{"/etcetera/file", false, true},
		{"/home/alice/.bashrc", false, true},
		{"/opt/app/config.yml", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			unconventional, err := ValidatePath(tt.path)
			if tt.forbidden {
				assert.ErrorIs(t, err, kerrors.ErrForbiddenPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.unconventional, unconventional)
		})
	}
}

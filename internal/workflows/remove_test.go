package workflows

import (
	"context"
	"path/filepath"
	"testing"

	kerrors "github.com/confect-dev/confect/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveSingleFile(t *testing.T) {
	env, system := newTestEnv(t)
	path := filepath.Join(system, "etc", "hosts")
	writeFile(t, path, "127.0.0.1 localhost\n")
	_, err := Add(context.Background(), env, AddOptions{Path: path, Category: "net", CreateCategory: true})
	require.NoError(t, err)

	result, err := Remove(context.Background(), env, RemoveOptions{Path: path, Delete: true})
	require.NoError(t, err)
	assert.Equal(t, "net", result.Category)
	assert.Equal(t, []string{path}, result.Files)
	assert.False(t, result.Excluded)

	c, err := env.Registry.Get("net")
	require.NoError(t, err)
	assert.Empty(t, c.Paths)
	assert.NoFileExists(t, filepath.Join(env.Root, "net", path[1:]))
	assert.Equal(t, 0, env.Store.Len())
}

func TestRemoveFileInsideTrackedDirectory(t *testing.T) {
	env, system := newTestEnv(t)
	dir := filepath.Join(system, "etc", "app")
	keep := filepath.Join(dir, "app.conf")
	drop := filepath.Join(dir, "secret.conf")
	writeFile(t, keep, "keep")
	writeFile(t, drop, "drop")
	_, err := Add(context.Background(), env, AddOptions{Path: dir, Category: "app", CreateCategory: true})
	require.NoError(t, err)

	result, err := Remove(context.Background(), env, RemoveOptions{Path: drop, Delete: true})
	require.NoError(t, err)
	assert.True(t, result.Excluded)

	status, err := Status(context.Background(), env, StatusOptions{})
	require.NoError(t, err)
	assert.Empty(t, status.Files)

	_, ok := env.Store.Get(keep)
	assert.True(t, ok)
	_, ok = env.Store.Get(drop)
	assert.False(t, ok)
}

func TestRemoveDirectory(t *testing.T) {
	env, system := newTestEnv(t)
	dir := filepath.Join(system, "etc", "ssh")
	writeFile(t, filepath.Join(dir, "sshd_config"), "Port 22\n")
	_, err := Add(context.Background(), env, AddOptions{Path: dir, Category: "ssh", CreateCategory: true})
	require.NoError(t, err)

	_, err = Remove(context.Background(), env, RemoveOptions{Path: dir, Delete: true})
	require.NoError(t, err)

	c, err := env.Registry.Get("ssh")
	require.NoError(t, err)
	assert.Empty(t, c.Paths)
	assert.Equal(t, 0, env.Store.Len())
}

func TestRemoveUntracked(t *testing.T) {
	env, system := newTestEnv(t)

	_, err := Remove(context.Background(), env, RemoveOptions{Path: filepath.Join(system, "etc", "nothing")})
	assert.ErrorIs(t, err, kerrors.ErrPathNotTracked)
}

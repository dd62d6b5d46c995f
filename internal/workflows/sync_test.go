package workflows

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/confect-dev/confect/internal/configs"
	kerrors "github.com/confect-dev/confect/internal/errors"
	logger "github.com/confect-dev/confect/internal/logging"
	"github.com/confect-dev/confect/internal/vcs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitMessage(t *testing.T) {
	categoryOf := func(path string) (string, error) {
		switch filepath.Dir(path) {
		case "/etc/nginx":
			return "nginx", nil
		case "/etc/ssh":
			return "ssh", nil
		}
		return "", errors.New("untracked")
	}

	tests := []struct {
		name    string
		updated []string
		status  []vcs.StatusEntry
		want    string
	}{
		{
			name:    "single category update",
			updated: []string{"/etc/nginx/nginx.conf", "/etc/nginx/mime.types"},
			want:    "Update nginx (2 files)",
		},
		{
			name:    "multi category update",
			updated: []string{"/etc/nginx/nginx.conf", "/etc/ssh/sshd_config"},
			want:    "Update 2 files across 2 categories",
		},
		{
			name: "new files in one category",
			status: []vcs.StatusEntry{
				{Code: "??", Path: "ssh/etc/ssh/sshd_config"},
				{Code: " M", Path: ".confect/metadata.toml"},
			},
			want: "Add ssh (1 files)",
		},
		{
			name: "new files across categories",
			status: []vcs.StatusEntry{
				{Code: "??", Path: "ssh/etc/ssh/sshd_config"},
				{Code: "??", Path: "nginx/etc/nginx/nginx.conf"},
				{Code: "??", Path: "nginx/etc/nginx/mime.types"},
			},
			want: "Add nginx (2), ssh (1)",
		},
		{
			name: "bookkeeping only",
			status: []vcs.StatusEntry{
				{Code: " M", Path: ".confect/categories.toml"},
				{Code: " M", Path: ".gitignore"},
			},
			want: "Add 2 files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommitMessage(tt.updated, categoryOf, tt.status))
		})
	}
}

func TestInitAddSync(t *testing.T) {
	isolateGit(t)
	ctx := context.Background()

	root := filepath.Join(t.TempDir(), "repo")
	configPath := filepath.Join(t.TempDir(), "config.toml")
	cfg := configs.Default()
	cfg.Global.AutoPush = false

	initResult, err := Init(ctx, cfg, InitOptions{Path: root, Host: "Web 01", ConfigPath: configPath})
	require.NoError(t, err)
	assert.Equal(t, root, initResult.Path)
	assert.Equal(t, "host/web-01", initResult.Branch)
	assert.NotEmpty(t, initResult.ID)
	assert.True(t, initResult.ConfigWritten)
	assert.FileExists(t, filepath.Join(root, ".gitignore"))

	saved, err := configs.LoadFrom(configPath)
	require.NoError(t, err)
	assert.Equal(t, root, saved.Global.RepoPath)
	assert.Equal(t, "web-01", saved.Hosts.Current)

	_, err = Init(ctx, cfg, InitOptions{Path: root})
	assert.ErrorIs(t, err, kerrors.ErrAlreadyInitialized)

	env, err := Open(cfg, logger.Logger{})
	require.NoError(t, err)

	branch, err := env.Git.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "host/web-01", branch)

	system := t.TempDir()
	path := filepath.Join(system, "etc", "motd")
	writeFile(t, path, "hello\n")
	_, err = Add(ctx, env, AddOptions{Path: path})
	require.NoError(t, err)

	result, err := Sync(ctx, env, SyncOptions{})
	require.NoError(t, err)
	assert.True(t, result.Committed)
	assert.False(t, result.Pushed)
	assert.Equal(t, "Add default (1 files)", result.Message)

	_, err = Sync(ctx, env, SyncOptions{})
	assert.ErrorIs(t, err, kerrors.ErrNoChanges)

	writeFile(t, path, "hello again\n")
	result, err = Sync(ctx, env, SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{path}, result.Updated)
	assert.Equal(t, "Update default (1 files)", result.Message)

	repoCopy := env.Reconciler.RepoFile(mustCategory(t, env, "default"), path)
	assert.Equal(t, "hello again\n", readFile(t, repoCopy))

	result, err = Sync(ctx, env, SyncOptions{Message: "manual"})
	assert.ErrorIs(t, err, kerrors.ErrNoChanges)
	assert.Nil(t, result)

	changed, err := env.Git.HasChanges()
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, os.WriteFile(path, []byte("custom\n"), 0644))
	result, err = Sync(ctx, env, SyncOptions{Message: "manual"})
	require.NoError(t, err)
	assert.Equal(t, "manual", result.Message)
}

package workflows

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/confect-dev/confect/internal/category"
	"github.com/confect-dev/confect/internal/configs"
	logger "github.com/confect-dev/confect/internal/logging"

	"github.com/stretchr/testify/require"
)

// newTestEnv opens a repository with the .confect layout but no git
// repository. system is a scratch directory standing in for /.
func newTestEnv(t *testing.T) (env *Env, system string) {
	t.Helper()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(configs.Dir(root), 0755))

	cfg := configs.Default()
	cfg.Global.RepoPath = root
	cfg.Global.AutoPush = false

	env, err := Open(cfg, logger.Logger{})
	require.NoError(t, err)
	return env, t.TempDir()
}

// isolateGit skips the test without git and hides the host's git config.
func isolateGit(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(home, ".gitconfig"))
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func mustCategory(t *testing.T, env *Env, name string) *category.Category {
	t.Helper()
	c, err := env.Registry.Get(name)
	require.NoError(t, err)
	return c
}

package category

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/confect-dev/confect/internal/configs"
	kerrors "github.com/confect-dev/confect/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGet(t *testing.T) {
	r := NewRegistry(t.TempDir())

	require.NoError(t, r.Create("nginx", "web server", []string{"/etc/nginx/**"}))

	c, err := r.Get("nginx")
	require.NoError(t, err)
	assert.Equal(t, "web server", c.Description)
	assert.Equal(t, []string{"/etc/nginx/**"}, c.Paths)
}

func TestCreateDuplicate(t *testing.T) {
	r := NewRegistry(t.TempDir())

	require.NoError(t, r.Create("nginx", "", nil))
	err := r.Create("nginx", "", nil)
	assert.ErrorIs(t, err, kerrors.ErrAlreadyExists)
}

func TestCreateInvalidName(t *testing.T) {
	r := NewRegistry(t.TempDir())
	assert.ErrorIs(t, r.Create(".confect", "", nil), kerrors.ErrInvalidName)
}

func TestGetMissing(t *testing.T) {
	r := NewRegistry(t.TempDir())

	_, err := r.Get("missing")
	assert.ErrorIs(t, err, kerrors.ErrNotFound)
	assert.ErrorIs(t, r.Delete("missing"), kerrors.ErrNotFound)
	assert.ErrorIs(t, r.AddPath("missing", "/etc/hosts", false), kerrors.ErrNotFound)
	assert.ErrorIs(t, r.RemovePath("missing", "/etc/hosts"), kerrors.ErrNotFound)
}

func TestGetReturnsMutableCategory(t *testing.T) {
	r := NewRegistry(t.TempDir())
	require.NoError(t, r.Create("ssh", "", nil))

	c, err := r.Get("ssh")
	require.NoError(t, err)
	c.Description = "changed"

	again, err := r.Get("ssh")
	require.NoError(t, err)
	assert.Equal(t, "changed", again.Description)
}

func TestAddPathIsIdempotent(t *testing.T) {
	r := NewRegistry(t.TempDir())
	require.NoError(t, r.Create("ssh", "", nil))

	require.NoError(t, r.AddPath("ssh", "/etc/ssh/sshd_config", false))
	require.NoError(t, r.AddPath("ssh", "/etc/ssh/sshd_config", false))
	require.NoError(t, r.AddPath("ssh", "/etc/ssh/ssh_host_ed25519_key", true))
	require.NoError(t, r.AddPath("ssh", "/etc/ssh/ssh_host_ed25519_key", true))

	c, _ := r.Get("ssh")
	assert.Equal(t, []string{"/etc/ssh/sshd_config", "/etc/ssh/ssh_host_ed25519_key"}, c.Paths)
	assert.Equal(t, []string{"/etc/ssh/ssh_host_ed25519_key"}, c.Encrypt)
}

func TestAddPathEncryptOnExistingInclude(t *testing.T) {
	r := NewRegistry(t.TempDir())
	require.NoError(t, r.Create("ssh", "", []string{"/etc/ssh/key"}))

	require.NoError(t, r.AddPath("ssh", "/etc/ssh/key", true))

	c, _ := r.Get("ssh")
	assert.Equal(t, []string{"/etc/ssh/key"}, c.Paths)
	assert.Equal(t, []string{"/etc/ssh/key"}, c.Encrypt)
}

func TestRemovePath(t *testing.T) {
	r := NewRegistry(t.TempDir())
	require.NoError(t, r.Create("ssh", "", nil))
	require.NoError(t, r.AddPath("ssh", "/etc/ssh/key", true))
	require.NoError(t, r.AddPath("ssh", "/etc/ssh/sshd_config", false))

	require.NoError(t, r.RemovePath("ssh", "/etc/ssh/key"))
	require.NoError(t, r.RemovePath("ssh", "/etc/ssh/never-added"))

	c, _ := r.Get("ssh")
	assert.Equal(t, []string{"/etc/ssh/sshd_config"}, c.Paths)
	assert.Empty(t, c.Encrypt)
}

func TestFindForPath(t *testing.T) {
	r := NewRegistry(t.TempDir())
	require.NoError(t, r.Create("nginx", "", []string{"/etc/nginx/**"}))
	require.NoError(t, r.Create("ssh", "", []string{"/etc/ssh/*"}))

	c, ok := r.FindForPath("/etc/ssh/sshd_config")
	require.True(t, ok)
	assert.Equal(t, "ssh", c.Name)

	_, ok = r.FindForPath("/etc/hosts")
	assert.False(t, ok)

	assert.True(t, r.ContainsPath("nginx", "/etc/nginx/nginx.conf"))
	assert.False(t, r.ContainsPath("ssh", "/etc/nginx/nginx.conf"))
	assert.False(t, r.ContainsPath("missing", "/etc/nginx/nginx.conf"))
}

func TestListIsSorted(t *testing.T) {
	r := NewRegistry(t.TempDir())
	for _, name := range []string{"ssh", "apt", "nginx"} {
		require.NoError(t, r.Create(name, "", nil))
	}

	var names []string
	for _, c := range r.List() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"apt", "nginx", "ssh"}, names)
}

func TestExcludeManagement(t *testing.T) {
	r := NewRegistry(t.TempDir())
	require.NoError(t, r.Create("etc", "", []string{"/etc/*"}))

	require.NoError(t, r.AddExclude("etc", "/etc/shadow"))
	require.NoError(t, r.AddExclude("etc", "/etc/shadow"))
	assert.False(t, r.ContainsPath("etc", "/etc/shadow"))

	require.NoError(t, r.RemoveExclude("etc", "/etc/shadow"))
	assert.True(t, r.ContainsPath("etc", "/etc/shadow"))
}

func TestSaveAndLoadRegistry(t *testing.T) {
	root := t.TempDir()
	r := NewRegistry(root)
	require.NoError(t, r.Create("nginx", "web server", []string{"/etc/nginx/**"}))
	require.NoError(t, r.AddPath("nginx", "/etc/nginx/ssl/server.key", true))
	require.NoError(t, r.AddExclude("nginx", "/etc/nginx/*.bak"))
	require.NoError(t, r.Create("bare", "", nil))
	require.NoError(t, r.Save())

	loaded, err := LoadRegistry(root)
	require.NoError(t, err)
	assert.Len(t, loaded.List(), 2)

	c, err := loaded.Get("nginx")
	require.NoError(t, err)
	assert.Equal(t, "web server", c.Description)
	assert.Equal(t, []string{"/etc/nginx/**", "/etc/nginx/ssl/server.key"}, c.Paths)
	assert.Equal(t, []string{"/etc/nginx/ssl/server.key"}, c.Encrypt)
	assert.Equal(t, []string{"/etc/nginx/*.bak"}, c.Exclude)

	bare, err := loaded.Get("bare")
	require.NoError(t, err)
	assert.Empty(t, bare.Description)
	assert.Empty(t, bare.Paths)
}

func TestLoadRegistryMissingFile(t *testing.T) {
	r, err := LoadRegistry(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, r.List())
}

func TestLoadRegistryEmptyTable(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(configs.Dir(root), configs.CategoriesFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("[categories]\n"), 0644))

	r, err := LoadRegistry(root)
	require.NoError(t, err)
	assert.Empty(t, r.List())
}

func TestLoadRegistryMalformed(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(configs.Dir(root), configs.CategoriesFile)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("[categories.nginx\npaths = ["), 0644))

	_, err := LoadRegistry(root)
	assert.ErrorIs(t, err, kerrors.ErrSerialization)
}

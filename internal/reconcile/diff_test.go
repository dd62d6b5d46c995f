package reconcile

import (
	"os"
	"path/filepath"
	"testing"

	kerrors "github.com/confect-dev/confect/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffFileAppendedLine(t *testing.T) {
	f := newFixture(t)
	path := f.sysFile(t, "etc/app.conf", "a\nb\n")
	f.track(t, "app", path)
	_, err := f.reconciler.Add(path, "app", false)
	require.NoError(t, err)
	repo := f.repoFile(t, "app", path)

	writeFile(t, path, "a\nb\nc\n")

	diff, err := f.reconciler.DiffFile(path)
	require.NoError(t, err)
	assert.Equal(t, "--- a/"+path+"\n+++ b/"+repo+"\n+c\n", diff)
}

func TestDiffFileEqualAndOneSided(t *testing.T) {
	f := newFixture(t)
	path := f.sysFile(t, "etc/app.conf", "same\n")
	f.track(t, "app", path)

	diff, err := f.reconciler.DiffFile(path)
	require.NoError(t, err)
	assert.Equal(t, "File only exists in system: "+path, diff)

	_, err = f.reconciler.Add(path, "app", false)
	require.NoError(t, err)

	diff, err = f.reconciler.DiffFile(path)
	require.NoError(t, err)
	assert.Empty(t, diff)

	require.NoError(t, os.Remove(path))
	diff, err = f.reconciler.DiffFile(path)
	require.NoError(t, err)
	assert.Equal(t, "File only exists in repo: "+f.repoFile(t, "app", path), diff)
}

func TestDiffFileUntracked(t *testing.T) {
	f := newFixture(t)
	_, err := f.reconciler.DiffFile(filepath.Join(f.system, "nope"))
	assert.ErrorIs(t, err, kerrors.ErrPathNotTracked)
}

func TestPositionalDiff(t *testing.T) {
	tests := []struct {
		name   string
		system []string
		repo   []string
		want   string
	}{
		{
			name:   "appended line",
			system: []string{"a", "b", "c"},
			repo:   []string{"a", "b"},
			want:   "--- a/S\n+++ b/R\n+c\n",
		},
		{
			name:   "removed tail",
			system: []string{"a"},
			repo:   []string{"a", "b", "c"},
			want:   "--- a/S\n+++ b/R\n-b\n-c\n",
		},
		{
			name:   "changed line",
			system: []string{"a", "X", "c"},
			repo:   []string{"a", "b", "c"},
			want:   "--- a/S\n+++ b/R\n@@ -2,1 +2,1 @@\n-b\n+X\n",
		},
		{
			name:   "mid-file insertion cascades",
			system: []string{"a", "x", "b", "c"},
			repo:   []string{"a", "b", "c"},
			want: "--- a/S\n+++ b/R\n" +
				"@@ -2,1 +2,1 @@\n-b\n+x\n" +
				"@@ -3,1 +3,1 @@\n-c\n+b\n" +
				"+c\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PositionalDiff("S", "R", tt.system, tt.repo))
		})
	}
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb\n"))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\r\nb"))
	assert.Equal(t, []string{"", "a"}, splitLines("\na\n"))
	assert.Equal(t, []string{"a", ""}, splitLines("a\n\n"))
}

package workflows

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/confect-dev/confect/internal/audit"
	kerrors "github.com/confect-dev/confect/internal/errors"
)

// RemoveOptions configures the remove workflow.
type RemoveOptions struct {
	// Path is the tracked file or directory to stop tracking.
	Path string

	// Delete also removes the repository copy.
	Delete bool
}

// RemoveResult contains the outcome of a remove operation.
type RemoveResult struct {
	// Category is the category the path belonged to.
	Category string

	// Files lists the paths that are no longer tracked.
	Files []string

	// Deleted is true when repository copies were removed.
	Deleted bool

	// Excluded is true when the path was still covered by a broader
	// pattern and an exclude entry was added for it.
	Excluded bool
}

// Remove stops tracking a path.
//
// Returns ErrPathNotTracked if no category owns the path.
func Remove(ctx context.Context, env *Env, opts RemoveOptions) (*RemoveResult, error) {
	path, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, kerrors.IO("resolving", opts.Path, err)
	}

	name, err := env.Reconciler.GetCategory(path)
	if err != nil {
		return nil, err
	}

	files, err := env.Reconciler.Remove(path, opts.Delete)
	if err != nil {
		return nil, err
	}

	for _, pattern := range []string{path, filepath.Join(path, "**")} {
		if err := env.Registry.RemovePath(name, pattern); err != nil {
			return nil, err
		}
	}

	result := &RemoveResult{Category: name, Files: files, Deleted: opts.Delete}

	// A file inside a tracked directory stays matched by the directory glob.
	if !isDir(path) && env.Registry.ContainsPath(name, path) {
		if err := env.Registry.AddExclude(name, path); err != nil {
			return nil, err
		}
		result.Excluded = true
	}

	for _, p := range env.Store.Paths() {
		if p == path || strings.HasPrefix(p, path+"/") {
			env.Store.Remove(p)
		}
	}

	if err := env.Save(); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("remove")
	entry.Category = name
	entry.Files = files
	audit.Log(env.Root, entry)

	return result, nil
}

func isDir(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.IsDir()
}

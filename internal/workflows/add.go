package workflows

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/confect-dev/confect/internal/audit"
	"github.com/confect-dev/confect/internal/category"
	kerrors "github.com/confect-dev/confect/internal/errors"
)

// DefaultCategory receives paths that no category claims.
const DefaultCategory = "default"

// forbiddenPaths can never be tracked as a whole.
var forbiddenPaths = []string{"/", "/root", "/home", "/boot", "/dev", "/proc", "/sys", "/run"}

// conventionalRoots hold the files confect is meant for.
var conventionalRoots = []string{"/etc", "/var"}

// AddOptions configures the add workflow.
type AddOptions struct {
	// Path is the file or directory to track. Relative paths are resolved
	// against the working directory.
	Path string

	// Category is the target category. When empty, the first matching
	// category is used, then DefaultCategory.
	Category string

	// CreateCategory creates Category if it does not exist.
	CreateCategory bool

	// Encrypt stores the repository copies encrypted.
	Encrypt bool
}

// AddResult contains the outcome of an add operation.
type AddResult struct {
	// Category is the category the path was added to.
	Category string

	// CreatedCategory is true when the category did not exist before.
	CreatedCategory bool

	// Files lists every system path copied into the repository.
	Files []string

	// Encrypted is true when the add requested encryption.
	Encrypted bool

	// Unconventional is true when the path is outside /etc and /var.
	Unconventional bool
}

// Add tracks a file or directory.
//
// Returns ErrFileNotFound if the path does not exist, ErrForbiddenPath for
// system-critical roots and ErrNotFound for an unknown category without
// CreateCategory.
func Add(ctx context.Context, env *Env, opts AddOptions) (*AddResult, error) {
	path, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, kerrors.IO("resolving", opts.Path, err)
	}

	if _, err := os.Lstat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s %w", path, kerrors.ErrFileNotFound)
		}
		return nil, kerrors.IO("stat", path, err)
	}

	unconventional, err := ValidatePath(path)
	if err != nil {
		return nil, err
	}
	if unconventional {
		env.Log.Warnf("Adding file outside /etc or /var: %s", path)
	}

	name, created, err := resolveCategory(env.Registry, opts, path)
	if err != nil {
		return nil, err
	}

	if err := env.Registry.AddPath(name, category.NormalizePattern(path), opts.Encrypt); err != nil {
		return nil, err
	}

	files, err := env.Reconciler.Add(path, name, opts.Encrypt)
	if err != nil {
		return nil, err
	}

	if err := env.Save(); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("add")
	entry.Category = name
	entry.Files = files
	audit.Log(env.Root, entry)

	return &AddResult{
		Category:        name,
		CreatedCategory: created,
		Files:           files,
		Encrypted:       opts.Encrypt,
		Unconventional:  unconventional,
	}, nil
}

// ValidatePath rejects system-critical roots and reports whether path lies
// outside the conventional configuration roots.
func ValidatePath(path string) (bool, error) {
	clean := filepath.Clean(path)
	for _, forbidden := range forbiddenPaths {
		if clean == forbidden {
			return false, fmt.Errorf("%w: %s", kerrors.ErrForbiddenPath, clean)
		}
	}

	for _, root := range conventionalRoots {
		if clean == root || strings.HasPrefix(clean, root+"/") {
			return false, nil
		}
	}
	return true, nil
}

func resolveCategory(registry *category.Registry, opts AddOptions, path string) (string, bool, error) {
	if opts.Category != "" {
		if registry.Exists(opts.Category) {
			return opts.Category, false, nil
		}
		if !opts.CreateCategory {
			return "", false, fmt.Errorf("category %q %w (use --create to create it)", opts.Category, kerrors.ErrNotFound)
		}
		if err := registry.Create(opts.Category, "", nil); err != nil {
			return "", false, err
		}
		return opts.Category, true, nil
	}

	if c, ok := registry.FindForPath(path); ok {
		return c.Name, false, nil
	}

	if registry.Exists(DefaultCategory) {
		return DefaultCategory, false, nil
	}
	if err := registry.Create(DefaultCategory, "Files without a dedicated category", nil); err != nil {
		return "", false, err
	}
	return DefaultCategory, true, nil
}

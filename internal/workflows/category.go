package workflows

import (
	"context"
	"os"
	"path/filepath"

	kerrors "github.com/confect-dev/confect/internal/errors"
)

// ListCategories returns every category with its file count.
func ListCategories(ctx context.Context, env *Env) ([]CategoryInfo, error) {
	var infos []CategoryInfo
	for _, c := range env.Registry.List() {
		count, err := env.Reconciler.CountFilesInCategory(c.Name)
		if err != nil {
			return nil, err
		}
		infos = append(infos, CategoryInfo{
			Name:        c.Name,
			Description: c.Description,
			Paths:       c.Paths,
			Encrypt:     c.Encrypt,
			Exclude:     c.Exclude,
			Files:       count,
		})
	}
	return infos, nil
}

// CategoryDetail is a category together with its tracked files.
type CategoryDetail struct {
	CategoryInfo

	// TrackedFiles lists the system paths with a repository copy.
	TrackedFiles []string
}

// ShowCategory returns the named category and its tracked files.
func ShowCategory(ctx context.Context, env *Env, name string) (*CategoryDetail, error) {
	c, err := env.Registry.Get(name)
	if err != nil {
		return nil, err
	}

	files, err := env.Reconciler.ListFilesInCategory(name)
	if err != nil {
		return nil, err
	}

	return &CategoryDetail{
		CategoryInfo: CategoryInfo{
			Name:        c.Name,
			Description: c.Description,
			Paths:       c.Paths,
			Encrypt:     c.Encrypt,
			Exclude:     c.Exclude,
			Files:       len(files),
		},
		TrackedFiles: files,
	}, nil
}

// CreateCategory adds a category and saves the registry.
func CreateCategory(ctx context.Context, env *Env, name, description string, paths []string) error {
	if err := env.Registry.Create(name, description, paths); err != nil {
		return err
	}
	return env.Registry.Save()
}

// DeleteCategory removes a category. With purge, its repository subtree is
// deleted too.
func DeleteCategory(ctx context.Context, env *Env, name string, purge bool) error {
	if err := env.Registry.Delete(name); err != nil {
		return err
	}

	if purge {
		dir := filepath.Join(env.Root, name)
		if err := os.RemoveAll(dir); err != nil {
			return kerrors.IO("removing", dir, err)
		}
	}

	return env.Registry.Save()
}

// AddCategoryPath adds an include pattern, optionally marking it encrypted.
func AddCategoryPath(ctx context.Context, env *Env, name, pattern string, encrypt bool) error {
	if err := env.Registry.AddPath(name, pattern, encrypt); err != nil {
		return err
	}
	return env.Registry.Save()
}

// RemoveCategoryPath removes an include pattern.
func RemoveCategoryPath(ctx context.Context, env *Env, name, pattern string) error {
	if err := env.Registry.RemovePath(name, pattern); err != nil {
		return err
	}
	return env.Registry.Save()
}

// ExcludeCategoryPath adds an exclude pattern, or removes it when remove is set.
func ExcludeCategoryPath(ctx context.Context, env *Env, name, pattern string, remove bool) error {
	var err error
	if remove {
		err = env.Registry.RemoveExclude(name, pattern)
	} else {
		err = env.Registry.AddExclude(name, pattern)
	}
	if err != nil {
		return err
	}
	return env.Registry.Save()
}

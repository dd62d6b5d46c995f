package reconcile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	kerrors "github.com/confect-dev/confect/internal/errors"
)

// ListFilesInCategory returns the system paths of every repository copy in
// the named category.
func (r *Reconciler) ListFilesInCategory(name string) ([]string, error) {
	c, err := r.registry.Get(name)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(r.root, c.Name)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(r.root, p)
		if err != nil {
			return err
		}
		if systemPath, ok := c.SystemPathFor(rel); ok {
			files = append(files, systemPath)
		}
		return nil
	})
	if err != nil {
		return nil, kerrors.IO("walking", dir, err)
	}

	sort.Strings(files)
	return files, nil
}

// ListAllTrackedFiles returns the tracked system paths of every category.
func (r *Reconciler) ListAllTrackedFiles() ([]string, error) {
	var files []string
	for _, c := range r.registry.List() {
		list, err := r.ListFilesInCategory(c.Name)
		if err != nil {
			return nil, err
		}
		files = append(files, list...)
	}
	return files, nil
}

func (r *Reconciler) CountFilesInCategory(name string) (int, error) {
	files, err := r.ListFilesInCategory(name)
	return len(files), err
}

func (r *Reconciler) CountAllFiles() (int, error) {
	files, err := r.ListAllTrackedFiles()
	return len(files), err
}

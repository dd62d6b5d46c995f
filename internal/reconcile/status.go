package reconcile

import (
	"os"
	"sort"

	"github.com/confect-dev/confect/internal/category"
	"github.com/confect-dev/confect/internal/utils"

	mapset "github.com/deckarep/golang-set/v2"
)

// FileStatus classifies a system/repository pair that differs.
type FileStatus int

const (
	// StatusModified means both copies exist with different content.
	StatusModified FileStatus = iota + 1
	// StatusAdded means only the system copy exists.
	StatusAdded
	// StatusDeleted means only the repository copy exists.
	StatusDeleted
	// StatusMissing means a candidate exists on neither side.
	StatusMissing
)

func (s FileStatus) String() string {
	switch s {
	case StatusModified:
		return "modified"
	case StatusAdded:
		return "added"
	case StatusDeleted:
		return "deleted"
	case StatusMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// Status classifies every candidate path of the selected categories. An
// empty filter selects all categories. Only differing pairs are returned.
func (r *Reconciler) Status(filter string) (map[string]FileStatus, error) {
	categories, err := r.selectCategories(filter)
	if err != nil {
		return nil, err
	}

	result := make(map[string]FileStatus)
	for _, c := range categories {
		candidates, err := r.candidates(c)
		if err != nil {
			return nil, err
		}

		for _, systemPath := range candidates {
			status, changed, err := r.classify(c, systemPath)
			if err != nil {
				return nil, err
			}
			if changed {
				result[systemPath] = status
			}
		}
	}

	return result, nil
}

func (r *Reconciler) selectCategories(filter string) ([]*category.Category, error) {
	if filter == "" {
		return r.registry.List(), nil
	}
	c, err := r.registry.Get(filter)
	if err != nil {
		return nil, err
	}
	return []*category.Category{c}, nil
}

// candidates returns the sorted union of tracked, expanded and literal paths.
func (r *Reconciler) candidates(c *category.Category) ([]string, error) {
	tracked, err := r.ListFilesInCategory(c.Name)
	if err != nil {
		return nil, err
	}
	paths := mapset.NewThreadUnsafeSet(tracked...)

	expanded, err := c.Expand()
	if err != nil {
		return nil, err
	}
	paths.Append(expanded...)

	for _, p := range c.LiteralPaths() {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			continue
		}
		paths.Add(p)
	}

	sorted := paths.ToSlice()
	sort.Strings(sorted)
	return sorted, nil
}

func (r *Reconciler) classify(c *category.Category, systemPath string) (FileStatus, bool, error) {
	repoPath := r.RepoFile(c, systemPath)
	systemExists := hasContent(systemPath)
	repoExists := utils.FileExists(repoPath)

	switch {
	case systemExists && repoExists:
		same, err := r.sameContent(systemPath, repoPath)
		if err != nil {
			return 0, false, err
		}
		if same {
			return 0, false, nil
		}
		return StatusModified, true, nil
	case systemExists:
		return StatusAdded, true, nil
	case repoExists:
		return StatusDeleted, true, nil
	default:
		return StatusMissing, true, nil
	}
}

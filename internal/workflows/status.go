package workflows

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/confect-dev/confect/internal/reconcile"
)

// StatusOptions configures the status workflow.
type StatusOptions struct {
	// Category restricts the check to one category. Empty means all.
	Category string

	// Diff also renders the diff of every modified file.
	Diff bool
}

// FileStatusInfo describes one differing file.
type FileStatusInfo struct {
	// Path is the absolute system path.
	Path string

	// Category is the owning category.
	Category string

	// Status classifies the difference.
	Status reconcile.FileStatus

	// Diff is the positional diff, set for modified files when requested.
	Diff string
}

// StatusSummary holds counts of files by status.
type StatusSummary struct {
	Modified int
	Added    int
	Deleted  int
	Missing  int
}

// Total returns the number of differing files.
func (s StatusSummary) Total() int {
	return s.Modified + s.Added + s.Deleted + s.Missing
}

// StatusResult contains the outcome of a status operation.
type StatusResult struct {
	// Files is sorted by path.
	Files []FileStatusInfo

	Summary StatusSummary
}

// Status compares tracked system files with their repository copies.
//
// Returns ErrNotFound if Category names an unknown category.
func Status(ctx context.Context, env *Env, opts StatusOptions) (*StatusResult, error) {
	statuses, err := env.Reconciler.Status(opts.Category)
	if err != nil {
		return nil, err
	}

	result := &StatusResult{}
	for path, status := range statuses {
		info := FileStatusInfo{Path: path, Status: status}
		if name, err := env.Reconciler.GetCategory(path); err == nil {
			info.Category = name
		} else {
			info.Category = opts.Category
		}

		if opts.Diff && status == reconcile.StatusModified {
			diff, err := env.Reconciler.DiffFile(path)
			if err != nil {
				return nil, err
			}
			info.Diff = diff
		}

		switch status {
		case reconcile.StatusModified:
			result.Summary.Modified++
		case reconcile.StatusAdded:
			result.Summary.Added++
		case reconcile.StatusDeleted:
			result.Summary.Deleted++
		case reconcile.StatusMissing:
			result.Summary.Missing++
		}

		result.Files = append(result.Files, info)
	}

	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})

	return result, nil
}

// DiffOptions configures the diff workflow.
type DiffOptions struct {
	// File limits the diff to one system path.
	File string

	// Category limits the diff to one category.
	Category string
}

// FileDiff is the diff of one file.
type FileDiff struct {
	Path string
	Diff string
}

// Diff renders diffs for one file, or for every modified file in scope.
//
// Returns ErrPathNotTracked if File is not owned by any category.
func Diff(ctx context.Context, env *Env, opts DiffOptions) ([]FileDiff, error) {
	if opts.File != "" {
		path, err := filepath.Abs(opts.File)
		if err != nil {
			return nil, err
		}
		diff, err := env.Reconciler.DiffFile(path)
		if err != nil {
			return nil, err
		}
		if diff == "" {
			return nil, nil
		}
		return []FileDiff{{Path: path, Diff: diff}}, nil
	}

	status, err := Status(ctx, env, StatusOptions{Category: opts.Category, Diff: true})
	if err != nil {
		return nil, err
	}

	var diffs []FileDiff
	for _, f := range status.Files {
		if f.Diff != "" {
			diffs = append(diffs, FileDiff{Path: f.Path, Diff: f.Diff})
		}
	}
	return diffs, nil
}

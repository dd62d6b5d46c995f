package workflows

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/confect-dev/confect/internal/audit"
	kerrors "github.com/confect-dev/confect/internal/errors"
	"github.com/confect-dev/confect/internal/vcs"
)

// SyncOptions configures the sync workflow.
type SyncOptions struct {
	// Message overrides the generated commit message.
	Message string

	// NoPush skips pushing even when auto_push is enabled.
	NoPush bool
}

// SyncResult contains the outcome of a sync operation.
type SyncResult struct {
	// Updated lists the system files refreshed into the repository.
	Updated []string

	// Changes is the number of changed files that were committed.
	Changes int

	// Message is the commit message, empty when nothing was committed.
	Message string

	// Committed is true when a commit was created.
	Committed bool

	// Pushed is true when the branch was pushed.
	Pushed bool

	// Remote is the remote that was pushed to.
	Remote string
}

// Sync refreshes repository copies from the system, recaptures their
// metadata, commits every change and pushes when configured.
//
// Returns ErrNoChanges when there is nothing to commit and nothing to push.
func Sync(ctx context.Context, env *Env, opts SyncOptions) (*SyncResult, error) {
	updated, err := env.Reconciler.RefreshAll()
	if err != nil {
		return nil, err
	}

	if len(updated) > 0 {
		for _, path := range updated {
			if err := env.Store.UpdateFromSystem(path); err != nil {
				return nil, err
			}
		}
		if err := env.Store.Save(); err != nil {
			return nil, err
		}
	}

	status, err := env.Git.Status()
	if err != nil {
		return nil, err
	}

	result := &SyncResult{Updated: updated, Remote: env.Remote()}
	push := !opts.NoPush && env.Config.Global.AutoPush && env.Git.HasRemote(result.Remote)

	if len(status) == 0 {
		if !push {
			return nil, kerrors.ErrNoChanges
		}
		if err := env.Git.Push(result.Remote); err != nil {
			return nil, err
		}
		result.Pushed = true
		return result, nil
	}

	result.Changes = len(status)
	if len(updated) > 0 {
		result.Changes = len(updated)
	}

	result.Message = opts.Message
	if result.Message == "" {
		result.Message = CommitMessage(updated, env.Reconciler.GetCategory, status)
	}

	// Logged before committing so the entry is part of the commit.
	entry := audit.NewEntry("sync")
	entry.FilesCount = result.Changes
	entry.Message = result.Message
	audit.Log(env.Root, entry)

	if err := env.Git.CommitAll(result.Message); err != nil {
		return nil, err
	}
	result.Committed = true

	if push {
		if err := env.Git.Push(result.Remote); err != nil {
			return result, err
		}
		result.Pushed = true
	}

	return result, nil
}

// CommitMessage describes a sync commit.
//
// Refreshed files are grouped by category. Otherwise the git status entries
// are grouped by their first path component, which is the category
// directory. Bookkeeping paths starting with a dot are not counted.
func CommitMessage(updated []string, categoryOf func(string) (string, error), status []vcs.StatusEntry) string {
	if len(updated) > 0 {
		categories := make(map[string]bool)
		for _, path := range updated {
			if name, err := categoryOf(path); err == nil {
				categories[name] = true
			}
		}

		if len(categories) == 1 {
			for name := range categories {
				return fmt.Sprintf("Update %s (%d files)", name, len(updated))
			}
		}
		return fmt.Sprintf("Update %d files across %d categories", len(updated), len(categories))
	}

	counts := make(map[string]int)
	for _, entry := range status {
		first, _, _ := strings.Cut(entry.Path, "/")
		if first == "" || strings.HasPrefix(first, ".") {
			continue
		}
		counts[first]++
	}

	type categoryCount struct {
		name  string
		count int
	}
	sorted := make([]categoryCount, 0, len(counts))
	for name, count := range counts {
		sorted = append(sorted, categoryCount{name, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].name < sorted[j].name
	})

	switch len(sorted) {
	case 0:
		return fmt.Sprintf("Add %d files", len(status))
	case 1:
		return fmt.Sprintf("Add %s (%d files)", sorted[0].name, sorted[0].count)
	default:
		parts := make([]string, len(sorted))
		for i, c := range sorted {
			parts[i] = fmt.Sprintf("%s (%d)", c.name, c.count)
		}
		return "Add " + strings.Join(parts, ", ")
	}
}

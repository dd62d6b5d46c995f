package workflows

import (
	"context"
	"fmt"

	kerrors "github.com/confect-dev/confect/internal/errors"
)

// PullOptions configures the pull workflow.
type PullOptions struct {
	// Restore writes every tracked file back onto the system after pulling.
	// Existing files are backed up first.
	Restore bool
}

// PullResult contains the outcome of a pull.
type PullResult struct {
	Remote string

	// Restore is set when PullOptions.Restore was requested.
	Restore *RestoreResult
}

// Pull fast-forwards the repository from its remote and reloads the
// registry and metadata that came with it.
//
// Returns ErrVCS if the remote is not configured or cannot fast-forward.
func Pull(ctx context.Context, env *Env, opts PullOptions) (*PullResult, error) {
	remote := env.Remote()
	if !env.Git.HasRemote(remote) {
		return nil, fmt.Errorf("%w: remote %q is not configured", kerrors.ErrVCS, remote)
	}

	if err := env.Git.Pull(remote); err != nil {
		return nil, err
	}

	if err := env.reload(); err != nil {
		return nil, err
	}

	result := &PullResult{Remote: remote}
	if opts.Restore {
		restored, err := Restore(ctx, env, RestoreOptions{Backup: true})
		if err != nil {
			return result, err
		}
		result.Restore = restored
	}

	return result, nil
}

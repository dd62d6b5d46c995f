// Package workflows provides high-level orchestration for confect commands.
//
// Workflows coordinate the core packages (category, reconcile, metadata,
// secrets) with the collaborators (vcs, audit, configs) to implement
// complete user-facing features. Each workflow handles a single command's
// business logic, independent of CLI concerns like flag parsing, spinners,
// and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Opening the repository (Open builds an Env once per invocation)
//   - Validating paths and categories
//   - Performing the core operation
//   - Persisting the registry and metadata store
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - Init: creates the repository layout, the git repository and the host branch
//   - Add: tracks a file or directory in a category
//   - Remove: stops tracking a path
//   - Status and Diff: compare the system with the repository
//   - Sync: refreshes repository copies, commits and pushes
//   - Restore: writes repository copies back onto the system
//   - Pull: fast-forwards from the remote, optionally restoring afterwards
//   - Info: summarizes the repository
//   - Keygen: creates an age identity and enables encryption
//   - Log: filters the audit log
//   - Category management: list, show, create, delete and pattern edits
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching:
//
//	result, err := workflows.Add(ctx, env, opts)
//	if errors.Is(err, kerrors.ErrForbiddenPath) {
//	    // Explain which roots cannot be tracked
//	}
//
// Batch workflows (Restore) do not stop at the first failure. Their results
// carry per-path failures next to the successes.
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Operations run to completion once started.
package workflows

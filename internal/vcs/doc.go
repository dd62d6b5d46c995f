// Package vcs wraps the git binary for the repository confect manages.
//
// confect only ever touches the working tree. Committing, branching and
// talking to remotes is delegated to git itself through Git. Every failure
// wraps ErrVCS and carries git's combined output.
package vcs

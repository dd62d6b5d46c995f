package vcs

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	kerrors "github.com/confect-dev/confect/internal/errors"
)

const (
	fallbackName  = "confect"
	fallbackEmail = "confect@localhost"
)

// Git runs git commands inside Dir.
type Git struct {
	Dir string
}

// New returns a Git for the working tree at dir.
func New(dir string) *Git {
	return &Git{Dir: dir}
}

// StatusEntry is one line of `git status --porcelain`.
type StatusEntry struct {
	// Code is the two-letter XY status with spaces trimmed, e.g. "M", "A", "??".
	Code string
	Path string
}

// run executes git and returns its combined output untrimmed.
func (g *Git) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = g.Dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return out.String(), fmt.Errorf("%w: git %s: %v: %s",
			kerrors.ErrVCS, strings.Join(args, " "), err, strings.TrimSpace(out.String()))
	}
	return out.String(), nil
}

func (g *Git) runTrimmed(args ...string) (string, error) {
	out, err := g.run(args...)
	return strings.TrimSpace(out), err
}

// Init creates a repository in Dir.
func (g *Git) Init() error {
	_, err := g.run("init")
	return err
}

// IsRepo reports whether Dir is inside a git working tree.
func (g *Git) IsRepo() bool {
	out, err := g.runTrimmed("rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// hasIdentity reports whether a committer email is configured.
func (g *Git) hasIdentity() bool {
	out, err := g.runTrimmed("config", "user.email")
	return err == nil && out != ""
}

// CommitAll stages every change and commits it with msg.
func (g *Git) CommitAll(msg string) error {
	if _, err := g.run("add", "-A"); err != nil {
		return err
	}

	changed, err := g.HasStagedChanges()
	if err != nil {
		return err
	}
	if !changed {
		return kerrors.ErrNoChanges
	}

	var args []string
	if !g.hasIdentity() {
		args = append(args, "-c", "user.name="+fallbackName, "-c", "user.email="+fallbackEmail)
	}
	args = append(args, "commit", "-m", msg)

	_, err = g.run(args...)
	return err
}

// HasStagedChanges reports whether the index differs from HEAD.
func (g *Git) HasStagedChanges() (bool, error) {
	entries, err := g.Status()
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.Code != "??" {
			return true, nil
		}
	}
	return false, nil
}

// HasChanges reports whether the working tree has anything to commit.
func (g *Git) HasChanges() (bool, error) {
	entries, err := g.Status()
	if err != nil {
		return false, err
	}
	return len(entries) > 0, nil
}

// Status lists changed paths relative to Dir. Untracked directories are
// expanded to their files.
func (g *Git) Status() ([]StatusEntry, error) {
	out, err := g.run("status", "--porcelain", "--untracked-files=all")
	if err != nil {
		return nil, err
	}
	return parsePorcelain(out), nil
}

func parsePorcelain(out string) []StatusEntry {
	var entries []StatusEntry
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}

		path := line[3:]
		if idx := strings.Index(path, " -> "); idx >= 0 {
			path = path[idx+len(" -> "):]
		}
		entries = append(entries, StatusEntry{
			Code: strings.TrimSpace(line[:2]),
			Path: strings.Trim(path, `"`),
		})
	}
	return entries
}

// AddRemote registers a remote.
func (g *Git) AddRemote(name, url string) error {
	_, err := g.run("remote", "add", name, url)
	return err
}

// HasRemote reports whether a remote called name exists.
func (g *Git) HasRemote(name string) bool {
	remotes, err := g.ListRemotes()
	if err != nil {
		return false
	}
	for _, r := range remotes {
		if r == name {
			return true
		}
	}
	return false
}

// ListRemotes returns the configured remote names.
func (g *Git) ListRemotes() ([]string, error) {
	out, err := g.runTrimmed("remote")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// CurrentBranch returns the checked-out branch name.
func (g *Git) CurrentBranch() (string, error) {
	return g.runTrimmed("rev-parse", "--abbrev-ref", "HEAD")
}

// CreateBranch creates name and switches to it.
func (g *Git) CreateBranch(name string) error {
	_, err := g.run("checkout", "-b", name)
	return err
}

// Push pushes HEAD to remote and sets the upstream.
func (g *Git) Push(remote string) error {
	_, err := g.run("push", "-u", remote, "HEAD")
	return err
}

// Pull fast-forwards the current branch from remote.
func (g *Git) Pull(remote string) error {
	branch, err := g.CurrentBranch()
	if err != nil {
		return err
	}
	_, err = g.run("pull", "--ff-only", remote, branch)
	return err
}

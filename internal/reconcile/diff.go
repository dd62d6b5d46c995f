package reconcile

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	kerrors "github.com/confect-dev/confect/internal/errors"
	"github.com/confect-dev/confect/internal/utils"
)

// DiffFile renders the positional line diff between systemPath and its
// repository copy. Equal content yields an empty string.
func (r *Reconciler) DiffFile(systemPath string) (string, error) {
	c, err := r.owner(systemPath)
	if err != nil {
		return "", err
	}
	repoPath := r.RepoFile(c, systemPath)

	if !utils.FileExists(repoPath) {
		return fmt.Sprintf("File only exists in system: %s", systemPath), nil
	}
	if !hasContent(systemPath) {
		return fmt.Sprintf("File only exists in repo: %s", repoPath), nil
	}

	system, err := os.ReadFile(systemPath)
	if err != nil {
		return "", kerrors.IO("reading", systemPath, err)
	}
	repo, err := r.readRepo(repoPath)
	if err != nil {
		return "", err
	}

	if bytes.Equal(system, repo) {
		return "", nil
	}

	return PositionalDiff(systemPath, repoPath, splitLines(string(system)), splitLines(string(repo))), nil
}

// PositionalDiff compares line i of system with line i of repo.
func PositionalDiff(systemPath, repoPath string, system, repo []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", systemPath)
	fmt.Fprintf(&b, "+++ b/%s\n", repoPath)

	common := min(len(system), len(repo))
	for i := 0; i < common; i++ {
		if system[i] == repo[i] {
			continue
		}
		fmt.Fprintf(&b, "@@ -%d,1 +%d,1 @@\n", i+1, i+1)
		fmt.Fprintf(&b, "-%s\n", repo[i])
		fmt.Fprintf(&b, "+%s\n", system[i])
	}

	for _, line := range system[common:] {
		fmt.Fprintf(&b, "+%s\n", line)
	}
	for _, line := range repo[common:] {
		fmt.Fprintf(&b, "-%s\n", line)
	}

	return b.String()
}

// splitLines splits on \n, drops a trailing \r from each line and ignores
// the empty string after a final newline.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

package category

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	kerrors "github.com/confect-dev/confect/internal/errors"

	"github.com/bmatcuk/doublestar/v4"
)

// Category groups related system files under one repository subtree.
type Category struct {
	Name        string
	Description string
	Paths       []string
	Encrypt     []string
	Exclude     []string
}

// New returns an empty category.
func New(name string) *Category {
	return &Category{Name: name}
}

// Matches reports whether path belongs to the category.
func (c *Category) Matches(path string) bool {
	if c.Excludes(path) {
		return false
	}
	return matchAny(c.Paths, path)
}

// Excludes reports whether any exclude pattern matches path.
func (c *Category) Excludes(path string) bool {
	for _, pattern := range c.Exclude {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

// ShouldEncrypt reports whether path matches an encrypt pattern.
func (c *Category) ShouldEncrypt(path string) bool {
	return matchAny(c.Encrypt, path)
}

func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
		if pattern == path {
			return true
		}
	}
	return false
}

// RepoPathFor maps an absolute system path to its repository-relative path.
func (c *Category) RepoPathFor(systemPath string) string {
	return filepath.Join(c.Name, strings.TrimLeft(systemPath, "/"))
}

// SystemPathFor maps a repository-relative path back to the system path.
// It returns false for the bare category root.
func (c *Category) SystemPathFor(repoPath string) (string, bool) {
	rel := filepath.ToSlash(filepath.Clean(strings.TrimLeft(repoPath, "/")))
	idx := strings.IndexByte(rel, '/')
	if idx < 0 {
		return "", false
	}

	rest := strings.Trim(rel[idx+1:], "/")
	if rest == "" {
		return "", false
	}

	return filepath.FromSlash("/" + rest), true
}

// Expand resolves the include patterns against the live filesystem and
// returns the sorted regular files and symlinks that Match the category.
func (c *Category) Expand() ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range c.Paths {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly(), doublestar.WithNoFollow())
		if errors.Is(err, doublestar.ErrBadPattern) {
			// Malformed patterns never match.
			continue
		}
		if err != nil {
			return nil, kerrors.IO("expanding", pattern, err)
		}

		for _, m := range matches {
			if seen[m] || c.Excludes(m) {
				continue
			}
			info, err := os.Lstat(m)
			if err != nil {
				continue
			}
			if !info.Mode().IsRegular() && info.Mode()&os.ModeSymlink == 0 {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}

	slices.Sort(files)
	return files, nil
}

// LiteralPaths returns the absolute include entries without glob syntax.
func (c *Category) LiteralPaths() []string {
	var literals []string
	for _, pattern := range c.Paths {
		if filepath.IsAbs(pattern) && !strings.ContainsAny(pattern, "*?[{") && !c.Excludes(pattern) {
			literals = append(literals, filepath.Clean(pattern))
		}
	}
	return literals
}

// NormalizePattern turns an existing directory into a recursive glob so that
// every file beneath it matches. Other paths are returned unchanged.
func NormalizePattern(path string) string {
	info, err := os.Lstat(path)
	if err == nil && info.IsDir() {
		return filepath.Join(path, "**")
	}
	return path
}

// ValidateName checks that name can own a repository subtree.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name is empty", kerrors.ErrInvalidName)
	case strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator):
		return fmt.Errorf("%w: %q contains a path separator", kerrors.ErrInvalidName, name)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: %q starts with a dot", kerrors.ErrInvalidName, name)
	}
	return nil
}

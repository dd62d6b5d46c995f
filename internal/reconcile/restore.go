package reconcile

import (
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/confect-dev/confect/internal/errors"
	"github.com/confect-dev/confect/internal/utils"
)

// RestoreReport is the outcome of a batch restore.
type RestoreReport struct {
	// Restored lists paths whose content and attributes were both applied.
	Restored []string
	// Failures lists paths whose content could not be restored.
	Failures []kerrors.BatchFailure
	// MetadataFailures lists paths restored with content but not attributes.
	MetadataFailures []kerrors.BatchFailure
}

// Failed reports whether any item of the batch failed.
func (r RestoreReport) Failed() bool {
	return len(r.Failures) > 0 || len(r.MetadataFailures) > 0
}

// RestoreFile writes the repository copy of systemPath back onto the
// system, decrypting it if needed.
func (r *Reconciler) RestoreFile(systemPath string) error {
	c, err := r.owner(systemPath)
	if err != nil {
		return err
	}

	repoPath := r.RepoFile(c, systemPath)
	if !utils.FileExists(repoPath) {
		return fmt.Errorf("%s %w", repoPath, kerrors.ErrFileNotFound)
	}

	content, err := r.readRepo(repoPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(systemPath), 0755); err != nil {
		return kerrors.IO("creating directory for", systemPath, err)
	}

	meta, recorded := r.store.Get(systemPath)
	if recorded && meta.IsSymlink() {
		return restoreThroughLink(systemPath, meta.SymlinkTarget, content, meta.ApplyTo)
	}

	perm := os.FileMode(0644)
	if recorded {
		perm = os.FileMode(meta.Perm()).Perm()
	}

	// #nosec G306 -- mode comes from captured metadata
	if err := os.WriteFile(systemPath, content, perm); err != nil {
		return kerrors.IO("writing", systemPath, err)
	}
	return nil
}

// restoreThroughLink recreates the link at path and writes content to the
// file it points at.
func restoreThroughLink(path, target string, content []byte, relink func(string) error) error {
	if err := relink(path); err != nil {
		return err
	}

	resolved := target
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(path), resolved)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0755); err != nil {
		return kerrors.IO("creating directory for", resolved, err)
	}

	// #nosec G306 -- an existing target keeps its mode
	if err := os.WriteFile(resolved, content, 0644); err != nil {
		return kerrors.IO("writing", resolved, err)
	}
	return nil
}

// Restore restores every path and applies its recorded attributes. It never
// aborts on an item failure.
func (r *Reconciler) Restore(paths []string) RestoreReport {
	var report RestoreReport

	for _, path := range paths {
		if err := r.RestoreFile(path); err != nil {
			r.log.Debugf("Failed to restore %s: %v", path, err)
			report.Failures = append(report.Failures, kerrors.BatchFailure{Path: path, Err: err})
			continue
		}

		if err := r.store.ApplyTo(path); err != nil {
			r.log.Debugf("Failed to apply metadata to %s: %v", path, err)
			report.MetadataFailures = append(report.MetadataFailures, kerrors.BatchFailure{Path: path, Err: err})
			continue
		}

		report.Restored = append(report.Restored, path)
	}

	return report
}

package workflows

import (
	"context"
	"os"
	"path/filepath"

	"github.com/confect-dev/confect/internal/audit"
	"github.com/confect-dev/confect/internal/configs"
	kerrors "github.com/confect-dev/confect/internal/errors"
	"github.com/confect-dev/confect/internal/utils"
)

// RestoreOptions configures the restore workflow.
type RestoreOptions struct {
	// Category restricts the restore to one category.
	Category string

	// File restores a single system path. Takes precedence over Category.
	File string

	// DryRun only lists the files that would be restored.
	DryRun bool

	// Backup copies existing system files to <path>.confect-backup first.
	Backup bool
}

// RestoreResult contains the outcome of a restore operation.
type RestoreResult struct {
	// Files lists every selected system path.
	Files []string

	// Existing lists the selected paths that currently exist on the system.
	Existing []string

	// DryRun is true when nothing was written.
	DryRun bool

	// Backups lists the backup files that were written.
	Backups []string

	// Restored lists paths whose content and attributes were restored.
	Restored []string

	// Failures lists paths that were not restored, including backup failures.
	Failures []kerrors.BatchFailure

	// MetadataFailures lists restored paths whose attributes could not be applied.
	MetadataFailures []kerrors.BatchFailure
}

// Restore writes repository copies back onto the system.
//
// It never stops at the first failure. Every selected path ends up in
// Restored, Failures or MetadataFailures.
func Restore(ctx context.Context, env *Env, opts RestoreOptions) (*RestoreResult, error) {
	files, err := selectRestoreFiles(env, opts)
	if err != nil {
		return nil, err
	}

	result := &RestoreResult{Files: files, DryRun: opts.DryRun}
	for _, path := range files {
		if utils.FileExists(path) {
			result.Existing = append(result.Existing, path)
		}
	}

	if opts.DryRun || len(files) == 0 {
		return result, nil
	}

	toRestore := files
	if opts.Backup {
		toRestore = nil
		for _, path := range files {
			backup, err := backupFile(path)
			if err != nil {
				result.Failures = append(result.Failures, kerrors.BatchFailure{Path: path, Err: err})
				continue
			}
			if backup != "" {
				result.Backups = append(result.Backups, backup)
			}
			toRestore = append(toRestore, path)
		}
	}

	report := env.Reconciler.Restore(toRestore)
	result.Restored = report.Restored
	result.Failures = append(result.Failures, report.Failures...)
	result.MetadataFailures = report.MetadataFailures

	entry := audit.NewEntry("restore")
	entry.Category = opts.Category
	entry.FilesCount = len(result.Restored)
	entry.Failures = len(result.Failures) + len(result.MetadataFailures)
	audit.Log(env.Root, entry)

	return result, nil
}

func selectRestoreFiles(env *Env, opts RestoreOptions) ([]string, error) {
	switch {
	case opts.File != "":
		path, err := filepath.Abs(opts.File)
		if err != nil {
			return nil, kerrors.IO("resolving", opts.File, err)
		}
		return []string{path}, nil
	case opts.Category != "":
		return env.Reconciler.ListFilesInCategory(opts.Category)
	default:
		return env.Reconciler.ListAllTrackedFiles()
	}
}

// backupFile copies a regular system file next to itself. Missing files
// and symlinks need no backup and return an empty path.
func backupFile(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", nil
	}

	backup := path + configs.BackupSuffix
	if err := utils.CopyFile(path, backup); err != nil {
		return "", kerrors.IO("backing up", path, err)
	}
	return backup, nil
}

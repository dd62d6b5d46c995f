package errors

import (
	"errors"
	"fmt"
)

// Lookup errors indicate that a category, file or tracked path is absent.
var (
	// ErrNotFound indicates a category could not be located.
	ErrNotFound = errors.New("not found")

	// ErrPathNotTracked indicates no category claims a system path.
	ErrPathNotTracked = errors.New("path not tracked")

	// ErrFileNotFound indicates a file is missing from the system or the repository.
	ErrFileNotFound = errors.New("file not found")
)

// Registry errors indicate an invalid change to the category registry.
var (
	// ErrAlreadyExists indicates a category name is already taken.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidName indicates a category name cannot own a repository subtree.
	ErrInvalidName = errors.New("invalid category name")

	// ErrForbiddenPath indicates an attempt to track a system-critical root.
	ErrForbiddenPath = errors.New("forbidden path, cannot track system-critical directories")
)

// Storage errors indicate filesystem or persistence failures.
var (
	// ErrIO indicates any filesystem failure.
	ErrIO = errors.New("io error")

	// ErrSerialization indicates a persisted file could not be parsed or encoded.
	ErrSerialization = errors.New("serialization failure")
)

// Cryptographic errors indicate failures at the encryption boundary.
var (
	// ErrEncryptionFailure indicates invalid recipients or a failed encryption.
	ErrEncryptionFailure = errors.New("encryption failure")

	// ErrDecryptionFailure indicates an envelope that cannot be opened.
	ErrDecryptionFailure = errors.New("decryption failure")
)

// ErrPermissionDenied indicates an ownership or mode change without the required privilege.
var ErrPermissionDenied = errors.New("permission denied")

// Repository errors indicate issues with the tracked repository itself.
var (
	// ErrNotInitialized indicates the repository has no .confect directory.
	ErrNotInitialized = errors.New("repository not initialized, run 'confect init' first")

	// ErrAlreadyInitialized indicates the repository was already set up.
	ErrAlreadyInitialized = errors.New("repository already initialized")

	// ErrNoChanges indicates there is nothing to commit or push.
	ErrNoChanges = errors.New("no changes to sync")

	// ErrVCS indicates the version-control collaborator failed.
	ErrVCS = errors.New("git error")
)

// BatchFailure records one failed item of a batch operation.
type BatchFailure struct {
	Path string
	Err  error
}

func (f BatchFailure) Error() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

func (f BatchFailure) Unwrap() error {
	return f.Err
}

// IO wraps a filesystem error so that both ErrIO and the original error match.
func IO(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}

// Serialization wraps a parse or encode error for a persisted file.
func Serialization(file string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrSerialization, file, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

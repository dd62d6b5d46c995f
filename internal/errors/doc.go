// Package errors provides typed error values for confect.
//
// Sentinel errors let callers handle specific conditions with errors.Is()
// instead of matching on message text.
//
// # Error Categories
//
//   - Lookup errors: a category or tracked path is absent (ErrNotFound,
//     ErrPathNotTracked, ErrFileNotFound)
//   - Registry errors: duplicate or invalid names (ErrAlreadyExists,
//     ErrInvalidName), refused paths (ErrForbiddenPath)
//   - Storage errors: filesystem and persistence failures (ErrIO,
//     ErrSerialization)
//   - Crypto errors: envelope failures (ErrEncryptionFailure,
//     ErrDecryptionFailure)
//   - Privilege errors: ownership changes without privilege
//     (ErrPermissionDenied)
//   - Repository errors: init state and git failures (ErrNotInitialized,
//     ErrAlreadyInitialized, ErrNoChanges, ErrVCS)
//
// # Usage
//
// Wrap a sentinel with the failing path or operation:
//
//	return fmt.Errorf("%w: %s", errors.ErrPathNotTracked, path)
//
// Filesystem failures keep the underlying error reachable as well:
//
//	return errors.IO("reading", path, err) // errors.Is(err, fs.ErrNotExist) still works
//
// # Batch Operations
//
// Restore and metadata application never abort on the first failure. They
// report every failed item as a BatchFailure next to the successes.
package errors

// Package reconcile moves tracked files between the live system and the
// repository working tree.
//
// Every system path owned by a category has one repository location,
// <root>/<category>/<path without leading slash>. The Reconciler copies in
// both directions, classifies differences and renders diffs. Out-of-band
// attributes are delegated to the metadata store and encrypted content to
// the secrets codec.
//
// # Status
//
// Status compares the candidate paths of each category. Candidates are the
// union of the repository subtree (mapped back to system paths), the
// category's expanded include globs and its literal include entries.
//
//	system  repo       result
//	yes     yes, same  (omitted)
//	yes     yes, diff  modified
//	yes     no         added
//	no      yes        deleted
//	no      no         missing
//
// A system path counts as present when its content can be read. Dangling
// symlinks therefore report as missing until their target returns.
//
// # Diff
//
// DiffFile zips the two files line by line and prints a hunk for every
// index that differs, then the tail of the longer file. It is positional:
// inserting one line near the top reports every following line as changed.
//
// # Batches
//
// Restore never stops at the first failure. Each path either lands in
// Restored or in one of the failure lists of the returned RestoreReport.
package reconcile

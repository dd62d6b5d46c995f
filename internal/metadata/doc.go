// Package metadata captures and restores the file attributes git does not
// keep: permission bits, ownership, modification time and symlink targets.
//
// Attributes are recorded per absolute system path in
// .confect/metadata.toml:
//
//	[files."/etc/nginx/nginx.conf"]
//	mode = 33188
//	uid = 0
//	gid = 0
//	owner = "root"
//	group = "root"
//	mtime = 2024-05-01T10:00:00Z
//
// Applying ownership requires privilege. Unprivileged runs surface
// ErrPermissionDenied for the chown step, after the mode has been applied.
// Ownership of symlinks themselves is not restored.
package metadata

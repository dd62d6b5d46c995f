// Package utils provides shared helpers used across confect's packages.
//
// # Filesystem Utilities
//
//   - FileExists and IsSymlink: existence checks that do not follow links
//   - CopyFile: copies content and permission bits
//   - FilesEqual: byte comparison of two files
//   - FormatPaths: formats file paths for human-readable output
//
// # System Utilities
//
//   - GetUsername: returns the current system username
//   - GetHostname: returns the system hostname
//   - SanitizeHostName: normalizes a host name for use in a branch name
//
// # Terminal Utilities
//
//   - IsTerminal: checks if a file is attached to a terminal
package utils

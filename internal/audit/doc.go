// Package audit records confect operations in a repository-level log.
//
// Every operation that changes the repository or the system (init, add,
// remove, sync, restore) appends one entry. The log travels with the
// repository, so every host sees who changed what and when.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) at:
//
//	.confect/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - User name and host name
//   - Operation name
//   - Operation-specific details (category, files, failure count)
//
// # Usage
//
//	entry := audit.NewEntry("add")
//	entry.Category = "nginx"
//	entry.Files = added
//	audit.Log(root, entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If the log cannot be written the operation
// continues without error.
//
// # Reading Logs
//
// ReadEntries parses the log for display. Malformed lines are skipped so
// that a partial write does not hide the rest of the history.
package audit

package audit

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/confect-dev/confect/internal/configs"
	"github.com/confect-dev/confect/internal/utils"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // System user performing the action.
	Host      string `json:"host"` // Host the action ran on.
	Operation string `json:"op"`   // Operation name.

	// Optional fields depending on operation.
	Category   string   `json:"category,omitempty"`    // For add/remove/restore.
	Files      []string `json:"files,omitempty"`       // For add/remove.
	FilesCount int      `json:"files_count,omitempty"` // For sync/restore.
	Failures   int      `json:"failures,omitempty"`    // For restore.
	Message    string   `json:"message,omitempty"`     // For sync (commit message).
}

// NewEntry returns an entry for op with the user and host filled in.
func NewEntry(op string) Entry {
	entry := Entry{Operation: op, Host: utils.CurrentHost()}

	if user, err := utils.GetUsername(); err == nil {
		entry.User = user
	}

	return entry
}

// LogPath returns the path to the audit log of the repository at root.
func LogPath(root string) string {
	return filepath.Join(configs.Dir(root), configs.AuditFile)
}

// Log appends an entry to the audit log of the repository at root.
// Failures are ignored.
func Log(root string, entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	// An uninitialized repository has nowhere to log.
	if _, err := os.Stat(configs.Dir(root)); err != nil {
		return
	}

	// #nosec G306 -- audit log should be readable by every host.
	f, err := os.OpenFile(LogPath(root), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries(root string) ([]Entry, error) {
	data, err := os.ReadFile(LogPath(root))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

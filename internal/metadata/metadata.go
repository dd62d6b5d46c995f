package metadata

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"strconv"
	"syscall"
	"time"

	kerrors "github.com/confect-dev/confect/internal/errors"

	"golang.org/x/sys/unix"
)

// FileMetadata holds the attributes of one system path.
type FileMetadata struct {
	// Mode is the raw st_mode value, type bits included.
	Mode  uint32 `toml:"mode"`
	UID   uint32 `toml:"uid"`
	GID   uint32 `toml:"gid"`
	Owner string `toml:"owner"`
	Group string `toml:"group"`

	ModTime       *time.Time `toml:"mtime,omitempty"`
	SymlinkTarget string     `toml:"symlink_target,omitempty"`
}

// FromPath captures the attributes of path without following symlinks.
func FromPath(path string) (*FileMetadata, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s %w", path, kerrors.ErrFileNotFound)
		}
		return nil, kerrors.IO("stat", path, err)
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return nil, kerrors.IO("stat", path, errors.New("no unix stat data"))
	}

	mtime := info.ModTime().UTC().Truncate(time.Second)
	meta := &FileMetadata{
		Mode:    uint32(stat.Mode),
		UID:     stat.Uid,
		GID:     stat.Gid,
		Owner:   ownerName(stat.Uid),
		Group:   groupName(stat.Gid),
		ModTime: &mtime,
	}

	if info.Mode()&fs.ModeSymlink != 0 {
		target, err := os.Readlink(path)
		if err != nil {
			return nil, kerrors.IO("readlink", path, err)
		}
		meta.SymlinkTarget = target
	}

	return meta, nil
}

func ownerName(uid uint32) string {
	id := strconv.FormatUint(uint64(uid), 10)
	if u, err := user.LookupId(id); err == nil {
		return u.Username
	}
	return id
}

func groupName(gid uint32) string {
	id := strconv.FormatUint(uint64(gid), 10)
	if g, err := user.LookupGroupId(id); err == nil {
		return g.Name
	}
	return id
}

// IsSymlink reports whether the entry describes a symbolic link.
func (m *FileMetadata) IsSymlink() bool {
	return m.SymlinkTarget != ""
}

// Perm returns the permission, setuid, setgid and sticky bits.
func (m *FileMetadata) Perm() uint32 {
	return m.Mode & 0o7777
}

// ModeString returns the permission bits in octal, e.g. "0644".
func (m *FileMetadata) ModeString() string {
	return fmt.Sprintf("%04o", m.Perm())
}

// ApplyTo restores the attributes onto path.
func (m *FileMetadata) ApplyTo(path string) error {
	if m.IsSymlink() {
		return m.applySymlink(path)
	}

	if err := unix.Chmod(path, m.Perm()); err != nil {
		return mapErr("chmod", path, err)
	}
	if err := unix.Chown(path, int(m.UID), int(m.GID)); err != nil {
		return mapErr("chown", path, err)
	}
	return nil
}

func (m *FileMetadata) applySymlink(path string) error {
	if _, err := os.Lstat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return mapErr("remove", path, err)
		}
	}
	if err := os.Symlink(m.SymlinkTarget, path); err != nil {
		return mapErr("symlink", path, err)
	}
	return nil
}

func mapErr(op, path string, err error) error {
	if errors.Is(err, unix.EPERM) || errors.Is(err, unix.EACCES) {
		return fmt.Errorf("%w: %s %s", kerrors.ErrPermissionDenied, op, path)
	}
	return kerrors.IO(op, path, err)
}

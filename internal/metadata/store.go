package metadata

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/confect-dev/confect/internal/configs"
	kerrors "github.com/confect-dev/confect/internal/errors"
)

type metadataFile struct {
	Files map[string]FileMetadata `toml:"files"`
}

// Store maps absolute system paths to their captured attributes.
type Store struct {
	root    string
	entries map[string]FileMetadata
}

// NewStore returns an empty store persisted under root.
func NewStore(root string) *Store {
	return &Store{root: root, entries: make(map[string]FileMetadata)}
}

func storePath(root string) string {
	return filepath.Join(configs.Dir(root), configs.MetadataFile)
}

// LoadStore reads .confect/metadata.toml. A missing file yields an empty store.
func LoadStore(root string) (*Store, error) {
	store := NewStore(root)
	path := storePath(root)

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return store, nil
		}
		return nil, kerrors.IO("stat", path, err)
	}

	var file metadataFile
	if err := configs.LoadTOML(path, &file); err != nil {
		return nil, kerrors.Serialization(path, err)
	}
	for p, meta := range file.Files {
		store.entries[p] = meta
	}
	return store, nil
}

// Save writes the store back to disk.
func (s *Store) Save() error {
	path := storePath(s.root)
	file := metadataFile{Files: s.entries}
	if err := configs.SaveTOML(path, file); err != nil {
		return kerrors.Serialization(path, err)
	}
	return nil
}

// UpdateFromSystem captures the current attributes of path.
func (s *Store) UpdateFromSystem(path string) error {
	meta, err := FromPath(path)
	if err != nil {
		return err
	}
	s.entries[path] = *meta
	return nil
}

// Set records meta for path.
func (s *Store) Set(path string, meta FileMetadata) {
	s.entries[path] = meta
}

// Get returns the entry for path.
func (s *Store) Get(path string) (*FileMetadata, bool) {
	meta, ok := s.entries[path]
	if !ok {
		return nil, false
	}
	return &meta, true
}

// ApplyTo applies the recorded attributes to path. Unknown paths are a no-op.
func (s *Store) ApplyTo(path string) error {
	meta, ok := s.entries[path]
	if !ok {
		return nil
	}
	return meta.ApplyTo(path)
}

// ApplyAll applies every entry whose path exists, or that describes a
// symlink. Failures are collected and do not stop the batch.
func (s *Store) ApplyAll() ([]string, []kerrors.BatchFailure) {
	var applied []string
	var failures []kerrors.BatchFailure

	for _, path := range s.Paths() {
		meta := s.entries[path]
		if !meta.IsSymlink() {
			if _, err := os.Stat(path); err != nil {
				continue
			}
		}

		if err := meta.ApplyTo(path); err != nil {
			failures = append(failures, kerrors.BatchFailure{Path: path, Err: err})
			continue
		}
		applied = append(applied, path)
	}

	return applied, failures
}

// Remove drops the entry for path.
func (s *Store) Remove(path string) {
	delete(s.entries, path)
}

// Paths returns every recorded path in sorted order.
func (s *Store) Paths() []string {
	paths := make([]string, 0, len(s.entries))
	for p := range s.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (s *Store) Len() int {
	return len(s.entries)
}

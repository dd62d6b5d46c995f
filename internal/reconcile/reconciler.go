package reconcile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/confect-dev/confect/internal/category"
	"github.com/confect-dev/confect/internal/configs"
	kerrors "github.com/confect-dev/confect/internal/errors"
	logger "github.com/confect-dev/confect/internal/logging"
	"github.com/confect-dev/confect/internal/metadata"
	"github.com/confect-dev/confect/internal/secrets"
	"github.com/confect-dev/confect/internal/utils"
)

// Reconciler copies, compares and restores the files owned by a registry.
type Reconciler struct {
	root       string
	encryption bool

	registry *category.Registry
	store    *metadata.Store
	codec    *secrets.Codec
	identity secrets.Identity
	log      logger.Logger
}

// New builds a Reconciler for the repository the registry belongs to. codec
// and identity may be nil when encryption is disabled.
func New(cfg *configs.Config, registry *category.Registry, store *metadata.Store,
	codec *secrets.Codec, identity secrets.Identity, log logger.Logger,
) *Reconciler {
	if codec == nil {
		// A codec without recipients still decrypts, and refuses to encrypt.
		codec, _ = secrets.NewCodec(nil)
	}

	return &Reconciler{
		root:       registry.Root(),
		encryption: cfg != nil && cfg.Encryption.Enabled,
		registry:   registry,
		store:      store,
		codec:      codec,
		identity:   identity,
		log:        log,
	}
}

// Root returns the repository root.
func (r *Reconciler) Root() string {
	return r.root
}

// RepoFile returns the absolute repository location of systemPath in c.
func (r *Reconciler) RepoFile(c *category.Category, systemPath string) string {
	return filepath.Join(r.root, c.RepoPathFor(systemPath))
}

// owner resolves the category for path. A directory registered as dir/**
// is owned by that category even though the bare directory does not match.
func (r *Reconciler) owner(path string) (*category.Category, error) {
	if c, ok := r.registry.FindForPath(path); ok {
		return c, nil
	}

	recursive := filepath.Join(path, "**")
	for _, c := range r.registry.List() {
		if slices.Contains(c.Paths, recursive) || slices.Contains(c.Paths, path) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%s %w", path, kerrors.ErrPathNotTracked)
}

// GetCategory returns the name of the category that owns path.
func (r *Reconciler) GetCategory(path string) (string, error) {
	c, err := r.owner(path)
	if err != nil {
		return "", err
	}
	return c.Name, nil
}

// Add copies path, or every regular file and symlink beneath it, into the
// named category and captures metadata for each entry.
func (r *Reconciler) Add(path, categoryName string, encrypt bool) ([]string, error) {
	if encrypt && !r.encryption {
		return nil, fmt.Errorf("%w: encryption is disabled in the configuration", kerrors.ErrEncryptionFailure)
	}

	c, err := r.registry.Get(categoryName)
	if err != nil {
		return nil, err
	}

	entries, err := collectEntries(c, path)
	if err != nil {
		return nil, err
	}

	added := make([]string, 0, len(entries))
	for _, entry := range entries {
		if err := r.copyToRepo(c, entry, encrypt); err != nil {
			return added, err
		}
		if err := r.store.UpdateFromSystem(entry); err != nil {
			return added, err
		}
		r.log.Debugf("Added %s to category %s", entry, c.Name)
		added = append(added, entry)
	}

	return added, nil
}

func collectEntries(c *category.Category, path string) ([]string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s %w", path, kerrors.ErrFileNotFound)
		}
		return nil, kerrors.IO("stat", path, err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	var entries []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() || d.Type()&fs.ModeSymlink != 0 {
			if !c.Excludes(p) {
				entries = append(entries, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, kerrors.IO("walking", path, err)
	}
	return entries, nil
}

func (r *Reconciler) shouldEncrypt(c *category.Category, path string, requested bool) bool {
	if !r.encryption {
		return false
	}
	return requested || c.ShouldEncrypt(path)
}

// copyToRepo writes the content of systemPath to its repository location.
// Symlinks are followed. Dangling links and links to directories copy
// nothing.
func (r *Reconciler) copyToRepo(c *category.Category, systemPath string, encrypt bool) error {
	dest := r.RepoFile(c, systemPath)

	info, err := os.Stat(systemPath)
	if err != nil {
		if utils.IsSymlink(systemPath) {
			r.log.Debugf("Skipping content of dangling symlink %s", systemPath)
			return nil
		}
		return kerrors.IO("stat", systemPath, err)
	}
	if info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return kerrors.IO("creating directory for", dest, err)
	}

	if r.shouldEncrypt(c, systemPath, encrypt) {
		r.log.Debugf("Encrypting %s", systemPath)
		return r.codec.EncryptFile(systemPath, dest)
	}

	if err := utils.CopyFile(systemPath, dest); err != nil {
		return kerrors.IO("copying", systemPath, err)
	}
	return nil
}

// Remove stops tracking path, deleting its repository copy when
// deleteFromRepo is set.
func (r *Reconciler) Remove(path string, deleteFromRepo bool) ([]string, error) {
	c, err := r.owner(path)
	if err != nil {
		return nil, err
	}

	if deleteFromRepo {
		dest := r.RepoFile(c, path)
		if err := os.RemoveAll(dest); err != nil {
			return nil, kerrors.IO("removing", dest, err)
		}
		r.log.Debugf("Deleted repository copy %s", dest)
	}

	return []string{path}, nil
}

// readRepo returns the plaintext of a repository copy.
func (r *Reconciler) readRepo(repoPath string) ([]byte, error) {
	if !secrets.IsEncrypted(repoPath) {
		data, err := os.ReadFile(repoPath)
		if err != nil {
			return nil, kerrors.IO("reading", repoPath, err)
		}
		return data, nil
	}

	in, err := os.Open(repoPath)
	if err != nil {
		return nil, kerrors.IO("opening", repoPath, err)
	}
	defer in.Close()

	var out bytes.Buffer
	if err := r.codec.Decrypt(&out, in, r.identity); err != nil {
		return nil, fmt.Errorf("%s: %w", repoPath, err)
	}
	return out.Bytes(), nil
}

// sameContent compares a system file against its repository copy.
func (r *Reconciler) sameContent(systemPath, repoPath string) (bool, error) {
	system, err := os.ReadFile(systemPath)
	if err != nil {
		return false, kerrors.IO("reading", systemPath, err)
	}
	repo, err := r.readRepo(repoPath)
	if err != nil {
		return false, err
	}
	return bytes.Equal(system, repo), nil
}

// RefreshAll copies every expanded system file whose repository copy is
// missing or differs. It returns the updated system paths.
func (r *Reconciler) RefreshAll() ([]string, error) {
	var updated []string

	for _, c := range r.registry.List() {
		paths, err := c.Expand()
		if err != nil {
			return updated, err
		}

		for _, path := range paths {
			if !hasContent(path) {
				continue
			}

			dest := r.RepoFile(c, path)
			if utils.FileExists(dest) {
				same, err := r.sameContent(path, dest)
				// Without an identity the copy cannot be compared, but it
				// can still be re-encrypted for the recipients.
				if err != nil && !(errors.Is(err, kerrors.ErrDecryptionFailure) && r.codec.Recipients() > 0) {
					return updated, err
				}
				if err == nil && same {
					continue
				}
			}

			// Copies that were stored encrypted stay encrypted.
			if err := r.copyToRepo(c, path, secrets.IsEncrypted(dest)); err != nil {
				return updated, err
			}
			r.log.Debugf("Refreshed %s", path)
			updated = append(updated, path)
		}
	}

	return updated, nil
}

// hasContent reports whether path resolves to a regular file.
func hasContent(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

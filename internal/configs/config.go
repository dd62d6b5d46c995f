package configs

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	kerrors "github.com/confect-dev/confect/internal/errors"

	"github.com/google/uuid"
)

const (
	// DirName is the bookkeeping directory at the repository root.
	DirName = ".confect"

	CategoriesFile = "categories.toml"
	MetadataFile   = "metadata.toml"
	ConfigFile     = "config.toml"
	AuditFile      = "audit.jsonl"

	// BackupSuffix is appended to system files saved before a restore.
	BackupSuffix = ".confect-backup"

	// SystemRepoPath is the conventional repository location for root.
	SystemRepoPath = "/var/lib/confect"
)

type Config struct {
	Global     GlobalConfig     `toml:"global"`
	Encryption EncryptionConfig `toml:"encryption"`
	Hosts      HostsConfig      `toml:"hosts"`
}

type GlobalConfig struct {
	DefaultRemote string `toml:"default_remote"`
	AutoPush      bool   `toml:"auto_push"`
	Editor        string `toml:"editor,omitempty"`
	RepoPath      string `toml:"repo_path,omitempty"`
}

type EncryptionConfig struct {
	Enabled        bool   `toml:"enabled"`
	PublicKey      string `toml:"public_key,omitempty"`
	RecipientsFile string `toml:"recipients_file,omitempty"`
	IdentityFile   string `toml:"identity_file,omitempty"`
}

type HostsConfig struct {
	Current string `toml:"current,omitempty"`
}

// RepoConfig is stored inside the repository at .confect/config.toml.
type RepoConfig struct {
	Repository RepoMeta `toml:"repository"`
}

type RepoMeta struct {
	Version int       `toml:"version"`
	ID      string    `toml:"id"`
	Created time.Time `toml:"created"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Global: GlobalConfig{
			DefaultRemote: "origin",
			AutoPush:      true,
		},
	}
}

// GlobalPath returns the location of the global config file.
func GlobalPath() (string, error) {
	if p := os.Getenv("CONFECT_CONFIG"); p != "" {
		return p, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not find config directory: %w", err)
	}
	return filepath.Join(configDir, "confect", ConfigFile), nil
}

// LoadGlobal loads the global configuration, falling back to defaults.
func LoadGlobal() (*Config, error) {
	path, err := GlobalPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads a configuration file on top of Default().
func LoadFrom(path string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(path, config); err != nil {
		return nil, kerrors.Serialization(path, err)
	}

	return config, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	if err := SaveTOML(path, c); err != nil {
		return kerrors.Serialization(path, err)
	}
	return nil
}

// RepoPath returns the configured repository root.
func (c *Config) RepoPath() string {
	if c.Global.RepoPath != "" {
		return c.Global.RepoPath
	}
	return DefaultRepoPath()
}

// DefaultRepoPath returns the XDG data location for the repository.
func DefaultRepoPath() string {
	if dataDir := os.Getenv("XDG_DATA_HOME"); dataDir != "" {
		return filepath.Join(dataDir, "confect")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return SystemRepoPath
	}
	return filepath.Join(homeDir, ".local", "share", "confect")
}

// Recipients returns the configured public key followed by every line of
// the recipients file. Blank and comment lines are left for the codec to skip.
func (c *Config) Recipients() ([]string, error) {
	var recipients []string
	if c.Encryption.PublicKey != "" {
		recipients = append(recipients, c.Encryption.PublicKey)
	}

	if c.Encryption.RecipientsFile == "" {
		return recipients, nil
	}

	file, err := os.Open(c.Encryption.RecipientsFile)
	if err != nil {
		return nil, kerrors.IO("opening recipients file", c.Encryption.RecipientsFile, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		recipients = append(recipients, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, kerrors.IO("reading recipients file", c.Encryption.RecipientsFile, err)
	}

	return recipients, nil
}

// Dir returns the .confect directory for a repository root.
func Dir(root string) string {
	return filepath.Join(root, DirName)
}

// NewRepoConfig returns a fresh repository config with a new UUID.
func NewRepoConfig() *RepoConfig {
	return &RepoConfig{
		Repository: RepoMeta{
			Version: 1,
			ID:      uuid.New().String(),
			Created: time.Now().UTC().Truncate(time.Second),
		},
	}
}

// LoadRepoConfig loads .confect/config.toml from a repository root.
func LoadRepoConfig(root string) (*RepoConfig, error) {
	path := filepath.Join(Dir(root), ConfigFile)
	config := &RepoConfig{Repository: RepoMeta{Version: 1}}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrNotInitialized, root)
	}

	if err := LoadTOML(path, config); err != nil {
		return nil, kerrors.Serialization(path, err)
	}
	return config, nil
}

// SaveRepoConfig writes the repository config under root.
func SaveRepoConfig(root string, config *RepoConfig) error {
	path := filepath.Join(Dir(root), ConfigFile)
	if err := SaveTOML(path, config); err != nil {
		return kerrors.Serialization(path, err)
	}
	return nil
}

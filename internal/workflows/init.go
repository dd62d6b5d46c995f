package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/confect-dev/confect/internal/audit"
	"github.com/confect-dev/confect/internal/configs"
	kerrors "github.com/confect-dev/confect/internal/errors"
	"github.com/confect-dev/confect/internal/utils"
	"github.com/confect-dev/confect/internal/vcs"
)

const initialCommitMessage = "Initialize confect repository"

// InitOptions configures the init workflow.
type InitOptions struct {
	// Path is the repository location. Defaults to the configured repo path.
	Path string

	// Remote is an optional URL registered under the default remote name.
	Remote string

	// Host names the host branch. Defaults to the system host name.
	Host string

	// ConfigPath, when set and no file exists there yet, receives a global
	// config pointing at the new repository.
	ConfigPath string
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// Path is the absolute repository location.
	Path string

	// ID is the repository UUID.
	ID string

	// Branch is the host branch that was created and checked out.
	Branch string

	// Remote is the URL that was registered, if any.
	Remote string

	// ConfigWritten is true when a new global config was created.
	ConfigWritten bool
}

// Init creates a new confect repository.
//
// It writes the .confect layout, initializes git, commits the layout and
// switches to a host/<host> branch.
//
// Returns ErrAlreadyInitialized if the path already holds a .confect directory.
func Init(ctx context.Context, cfg *configs.Config, opts InitOptions) (*InitResult, error) {
	path := opts.Path
	if path == "" {
		path = cfg.RepoPath()
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, kerrors.IO("resolving", opts.Path, err)
	}

	if utils.FileExists(configs.Dir(path)) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrAlreadyInitialized, path)
	}

	host := opts.Host
	if host == "" {
		host = cfg.Hosts.Current
	}
	if host == "" {
		host = utils.CurrentHost()
	}
	host = utils.SanitizeHostName(host)

	repoConfig := configs.NewRepoConfig()
	if err := writeLayout(path, repoConfig); err != nil {
		return nil, err
	}

	audit.Log(path, audit.NewEntry("init"))

	git := vcs.New(path)
	if !utils.FileExists(filepath.Join(path, ".git")) {
		if err := git.Init(); err != nil {
			return nil, err
		}
	}
	if err := git.CommitAll(initialCommitMessage); err != nil {
		return nil, err
	}

	branch := "host/" + host
	if err := git.CreateBranch(branch); err != nil {
		return nil, err
	}

	result := &InitResult{
		Path:   path,
		ID:     repoConfig.Repository.ID,
		Branch: branch,
	}

	if opts.Remote != "" {
		remote := cfg.Global.DefaultRemote
		if remote == "" {
			remote = "origin"
		}
		if err := git.AddRemote(remote, opts.Remote); err != nil {
			return nil, err
		}
		result.Remote = opts.Remote
	}

	if opts.ConfigPath != "" && !utils.FileExists(opts.ConfigPath) {
		cfg.Global.RepoPath = path
		cfg.Hosts.Current = host
		if err := cfg.Save(opts.ConfigPath); err != nil {
			return nil, err
		}
		result.ConfigWritten = true
	}

	return result, nil
}

func writeLayout(path string, repoConfig *configs.RepoConfig) error {
	dir := configs.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return kerrors.IO("creating", dir, err)
	}

	if err := configs.SaveRepoConfig(path, repoConfig); err != nil {
		return err
	}

	files := map[string]string{
		filepath.Join(dir, configs.CategoriesFile): "[categories]\n",
		filepath.Join(dir, configs.MetadataFile):   "[files]\n",
		filepath.Join(path, ".gitignore"):          "*" + configs.BackupSuffix + "\n",
	}
	for file, content := range files {
		// #nosec G306 -- repository files are meant to be shared.
		if err := os.WriteFile(file, []byte(content), 0644); err != nil {
			return kerrors.IO("writing", file, err)
		}
	}
	return nil
}

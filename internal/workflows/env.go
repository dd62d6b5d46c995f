package workflows

import (
	"fmt"
	"os"

	"github.com/confect-dev/confect/internal/category"
	"github.com/confect-dev/confect/internal/configs"
	kerrors "github.com/confect-dev/confect/internal/errors"
	logger "github.com/confect-dev/confect/internal/logging"
	"github.com/confect-dev/confect/internal/metadata"
	"github.com/confect-dev/confect/internal/reconcile"
	"github.com/confect-dev/confect/internal/secrets"
	"github.com/confect-dev/confect/internal/utils"
	"github.com/confect-dev/confect/internal/vcs"
)

// Env bundles everything a workflow needs for one repository. It is built
// once per invocation by Open.
type Env struct {
	Config   *configs.Config
	Root     string
	Registry *category.Registry
	Store    *metadata.Store

	// Codec and Identity are nil when encryption is disabled.
	Codec    *secrets.Codec
	Identity secrets.Identity

	Reconciler *reconcile.Reconciler
	Git        *vcs.Git
	Log        logger.Logger
}

// Open loads the repository configured in cfg.
//
// Returns ErrNotInitialized if the repository has no .confect directory.
func Open(cfg *configs.Config, log logger.Logger) (*Env, error) {
	root := cfg.RepoPath()
	if _, err := os.Stat(configs.Dir(root)); err != nil {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrNotInitialized, root)
	}

	registry, err := category.LoadRegistry(root)
	if err != nil {
		return nil, err
	}

	store, err := metadata.LoadStore(root)
	if err != nil {
		return nil, err
	}

	env := &Env{
		Config:   cfg,
		Root:     root,
		Registry: registry,
		Store:    store,
		Git:      vcs.New(root),
		Log:      log,
	}

	if cfg.Encryption.Enabled {
		if err := env.loadEncryption(); err != nil {
			return nil, err
		}
	}

	env.Reconciler = reconcile.New(cfg, registry, store, env.Codec, env.Identity, log)
	return env, nil
}

func (e *Env) loadEncryption() error {
	recipients, err := e.Config.Recipients()
	if err != nil {
		return err
	}

	codec, err := secrets.NewCodec(recipients)
	if err != nil {
		return err
	}
	e.Codec = codec

	// Without an identity, encrypted copies can still be written. Reading
	// them fails with ErrDecryptionFailure.
	if path := e.Config.Encryption.IdentityFile; path != "" {
		identity, err := secrets.LoadIdentityFile(path)
		if err != nil {
			e.Log.Warnf("Could not load identity file %s: %v", path, err)
			return nil
		}
		e.Identity = identity
	}
	return nil
}

// reload re-reads the registry and the metadata store after the
// repository changed underneath the Env.
func (e *Env) reload() error {
	fresh, err := Open(e.Config, e.Log)
	if err != nil {
		return err
	}
	*e = *fresh
	return nil
}

// Save persists the registry and the metadata store.
func (e *Env) Save() error {
	if err := e.Registry.Save(); err != nil {
		return err
	}
	return e.Store.Save()
}

// Host returns the configured host name, or the sanitized system host name.
func (e *Env) Host() string {
	if e.Config.Hosts.Current != "" {
		return e.Config.Hosts.Current
	}
	return utils.CurrentHost()
}

// Remote returns the name of the remote sync pushes to.
func (e *Env) Remote() string {
	if e.Config.Global.DefaultRemote != "" {
		return e.Config.Global.DefaultRemote
	}
	return "origin"
}

package workflows

import (
	"context"

	"github.com/confect-dev/confect/internal/configs"
)

// CategoryInfo summarizes one category.
type CategoryInfo struct {
	Name        string
	Description string
	Paths       []string
	Encrypt     []string
	Exclude     []string

	// Files is the number of repository copies in the category.
	Files int
}

// InfoResult describes the repository.
type InfoResult struct {
	Path    string
	ID      string
	Host    string
	Branch  string
	Remotes []string

	Categories []CategoryInfo

	TotalFiles   int
	ChangedFiles int

	AutoPush   bool
	Encryption bool
}

// Info gathers a summary of the repository. Parts that cannot be read are
// left empty rather than failing the whole report.
func Info(ctx context.Context, env *Env) (*InfoResult, error) {
	result := &InfoResult{
		Path:       env.Root,
		Host:       env.Host(),
		AutoPush:   env.Config.Global.AutoPush,
		Encryption: env.Config.Encryption.Enabled,
	}

	if repoConfig, err := configs.LoadRepoConfig(env.Root); err == nil {
		result.ID = repoConfig.Repository.ID
	}
	if branch, err := env.Git.CurrentBranch(); err == nil {
		result.Branch = branch
	}
	if remotes, err := env.Git.ListRemotes(); err == nil {
		result.Remotes = remotes
	}

	categories, err := ListCategories(ctx, env)
	if err != nil {
		return nil, err
	}
	result.Categories = categories
	for _, c := range categories {
		result.TotalFiles += c.Files
	}

	if status, err := env.Reconciler.Status(""); err == nil {
		result.ChangedFiles = len(status)
	} else {
		env.Log.Warnf("Could not compute status: %v", err)
	}

	return result, nil
}

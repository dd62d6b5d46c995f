package category

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/confect-dev/confect/internal/configs"
	kerrors "github.com/confect-dev/confect/internal/errors"
)

// categoriesFile is the on-disk layout of .confect/categories.toml.
type categoriesFile struct {
	Categories map[string]categoryData `toml:"categories"`
}

type categoryData struct {
	Description string   `toml:"description,omitempty"`
	Paths       []string `toml:"paths"`
	Encrypt     []string `toml:"encrypt"`
	Exclude     []string `toml:"exclude"`
}

// Registry holds the categories of one repository.
type Registry struct {
	root       string
	categories map[string]*Category
}

// NewRegistry returns an empty registry for the repository at root.
func NewRegistry(root string) *Registry {
	return &Registry{root: root, categories: make(map[string]*Category)}
}

// LoadRegistry reads the categories file of the repository at root. A
// missing file yields an empty registry.
func LoadRegistry(root string) (*Registry, error) {
	registry := NewRegistry(root)
	path := registry.path()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return registry, nil
	} else if err != nil {
		return nil, kerrors.IO("checking", path, err)
	}

	var file categoriesFile
	if err := configs.LoadTOML(path, &file); err != nil {
		return nil, kerrors.Serialization(path, err)
	}

	for name, data := range file.Categories {
		registry.categories[name] = &Category{
			Name:        name,
			Description: data.Description,
			Paths:       data.Paths,
			Encrypt:     data.Encrypt,
			Exclude:     data.Exclude,
		}
	}

	return registry, nil
}

// Save writes the registry back to the categories file.
func (r *Registry) Save() error {
	file := categoriesFile{Categories: make(map[string]categoryData, len(r.categories))}
	for name, c := range r.categories {
		file.Categories[name] = categoryData{
			Description: c.Description,
			Paths:       nonNil(c.Paths),
			Encrypt:     nonNil(c.Encrypt),
			Exclude:     nonNil(c.Exclude),
		}
	}

	path := r.path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return kerrors.IO("creating", filepath.Dir(path), err)
	}
	if err := configs.SaveTOML(path, file); err != nil {
		return kerrors.Serialization(path, err)
	}
	return nil
}

func (r *Registry) path() string {
	return filepath.Join(configs.Dir(r.root), configs.CategoriesFile)
}

// Root returns the repository root the registry belongs to.
func (r *Registry) Root() string {
	return r.root
}

// Add inserts a category. The name must be unused.
func (r *Registry) Add(c *Category) error {
	if err := ValidateName(c.Name); err != nil {
		return err
	}
	if _, ok := r.categories[c.Name]; ok {
		return fmt.Errorf("category %q %w", c.Name, kerrors.ErrAlreadyExists)
	}
	r.categories[c.Name] = c
	return nil
}

// Create adds a new category with the given include patterns.
func (r *Registry) Create(name, description string, paths []string) error {
	return r.Add(&Category{
		Name:        name,
		Description: description,
		Paths:       slices.Clone(paths),
	})
}

// Delete removes a category from the registry.
func (r *Registry) Delete(name string) error {
	if _, ok := r.categories[name]; !ok {
		return fmt.Errorf("category %q %w", name, kerrors.ErrNotFound)
	}
	delete(r.categories, name)
	return nil
}

// Get returns the named category. The returned value may be modified in place.
func (r *Registry) Get(name string) (*Category, error) {
	c, ok := r.categories[name]
	if !ok {
		return nil, fmt.Errorf("category %q %w", name, kerrors.ErrNotFound)
	}
	return c, nil
}

func (r *Registry) Exists(name string) bool {
	_, ok := r.categories[name]
	return ok
}

// List returns all categories sorted by name.
func (r *Registry) List() []*Category {
	list := make([]*Category, 0, len(r.categories))
	for _, c := range r.categories {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// FindForPath returns the first category, in name order, that matches path.
func (r *Registry) FindForPath(path string) (*Category, bool) {
	for _, c := range r.List() {
		if c.Matches(path) {
			return c, true
		}
	}
	return nil, false
}

// ContainsPath reports whether the named category matches path.
func (r *Registry) ContainsPath(name, path string) bool {
	c, ok := r.categories[name]
	return ok && c.Matches(path)
}

// AddPath appends pattern to the category's includes, and to its encrypt
// list when encrypt is set. Both appends are idempotent.
func (r *Registry) AddPath(name, pattern string, encrypt bool) error {
	c, err := r.Get(name)
	if err != nil {
		return err
	}

	if !slices.Contains(c.Paths, pattern) {
		c.Paths = append(c.Paths, pattern)
	}
	if encrypt && !slices.Contains(c.Encrypt, pattern) {
		c.Encrypt = append(c.Encrypt, pattern)
	}
	return nil
}

// RemovePath drops pattern from the category's include and encrypt lists.
func (r *Registry) RemovePath(name, pattern string) error {
	c, err := r.Get(name)
	if err != nil {
		return err
	}

	c.Paths = slices.DeleteFunc(c.Paths, func(p string) bool { return p == pattern })
	c.Encrypt = slices.DeleteFunc(c.Encrypt, func(p string) bool { return p == pattern })
	return nil
}

// AddExclude appends an exclude pattern if not already present.
func (r *Registry) AddExclude(name, pattern string) error {
	c, err := r.Get(name)
	if err != nil {
		return err
	}
	if !slices.Contains(c.Exclude, pattern) {
		c.Exclude = append(c.Exclude, pattern)
	}
	return nil
}

// RemoveExclude drops an exclude pattern.
func (r *Registry) RemoveExclude(name, pattern string) error {
	c, err := r.Get(name)
	if err != nil {
		return err
	}
	c.Exclude = slices.DeleteFunc(c.Exclude, func(p string) bool { return p == pattern })
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

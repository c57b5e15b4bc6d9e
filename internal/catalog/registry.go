package catalog

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/optindex/configs"
	apperrors "github.com/Aman-CERP/optindex/internal/errors"
)

const maxParallelLoads = 4

// Registry holds catalogs by name. Adding a catalog whose name is already
// present replaces it, so later sources override earlier ones.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Catalog
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Catalog)}
}

// Open returns a registry with the built-in catalogs and then each of
// files layered on top, in order. Files are read concurrently but applied
// in argument order, so a later file still overrides an earlier one.
func Open(files []string) (*Registry, error) {
	r := NewRegistry()
	if err := r.LoadFS(configs.Catalogs()); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err)
	}

	loaded := make([]*Catalog, len(files))
	var g errgroup.Group
	g.SetLimit(maxParallelLoads)
	for i, f := range files {
		g.Go(func() error {
			c, err := LoadFile(f)
			if err != nil {
				return err
			}
			loaded[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, c := range loaded {
		r.Add(c)
		slog.Debug("catalog_loaded",
			slog.String("name", c.Name),
			slog.String("source", files[i]),
			slog.Int("options", len(c.Options)))
	}
	return r, nil
}

// LoadFS adds every *.yaml file at the root of fsys, in name order.
func (r *Registry) LoadFS(fsys fs.FS) error {
	names, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return err
	}
	slices.Sort(names)

	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		c, err := Parse(data, path.Base(name))
		if err != nil {
			return err
		}
		r.Add(c)
	}
	return nil
}

// Add inserts or replaces c under c.Name.
func (r *Registry) Add(c *Catalog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[c.Name] = c
}

// Get returns the named catalog.
func (r *Registry) Get(name string) (*Catalog, error) {
	r.mu.RLock()
	c, ok := r.byName[name]
	r.mu.RUnlock()
	if ok {
		return c, nil
	}

	return nil, apperrors.New(apperrors.ErrCodeCatalogNotFound,
		fmt.Sprintf("catalog %q not found", name), nil).
		WithDetail("catalog", name).
		WithSuggestion("Available catalogs: " + strings.Join(r.Names(), ", "))
}

// Names returns catalog names in ascending order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// All returns every catalog ordered by name.
func (r *Registry) All() []*Catalog {
	names := r.Names()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Catalog, 0, len(names))
	for _, n := range names {
		if c, ok := r.byName[n]; ok {
			out = append(out, c)
		}
	}
	return out
}

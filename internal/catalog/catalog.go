package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	apperrors "github.com/Aman-CERP/optindex/internal/errors"
	"github.com/Aman-CERP/optindex/pkg/indexer"
)

// Catalog is a named, validated option list.
type Catalog struct {
	Name    string           `json:"name" yaml:"name"`
	Title   string           `json:"title" yaml:"title"`
	Options []indexer.Option `json:"options" yaml:"options"`
}

// file is the on-disk shape. Tree and Options may both be present;
// tree leaves are appended after the flat options.
type file struct {
	Name    string           `yaml:"name"`
	Title   string           `yaml:"title"`
	Options []indexer.Option `yaml:"options"`
	Tree    []node           `yaml:"tree"`
}

type node struct {
	Name     string   `yaml:"name"`
	Children []node   `yaml:"children"`
	Items    []string `yaml:"items"`
}

// Parse decodes and validates a catalog. source names the data in errors
// and supplies the catalog name when the file has none.
func Parse(data []byte, source string) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeFileCorrupt,
			fmt.Sprintf("failed to parse catalog %s", source), err).
			WithDetail("source", source)
	}

	c := &Catalog{
		Name:    strings.TrimSpace(f.Name),
		Title:   strings.TrimSpace(f.Title),
		Options: f.Options,
	}
	if c.Name == "" {
		c.Name = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}
	if c.Title == "" {
		c.Title = c.Name
	}
	for _, n := range f.Tree {
		c.Options = flatten(c.Options, n, nil)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile reads and parses a catalog file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := apperrors.ErrCodeFileNotFound
		if os.IsPermission(err) {
			code = apperrors.ErrCodeFilePermission
		}
		return nil, apperrors.New(code, fmt.Sprintf("cannot read catalog %s", path), err).
			WithDetail("path", path)
	}
	return Parse(data, path)
}

// flatten appends the leaves under n to out, depth first.
func flatten(out []indexer.Option, n node, path []string) []indexer.Option {
	path = append(path, strings.TrimSpace(n.Name))
	for _, item := range n.Items {
		label := strings.TrimSpace(item)
		ids := make([]string, 0, len(path)+1)
		for _, p := range path {
			ids = append(ids, Slug(p))
		}
		out = append(out, indexer.Option{
			ID:          strings.Join(append(ids, Slug(label)), "/"),
			Label:       label,
			Description: strings.Join(path, " › "),
		})
	}
	for _, child := range n.Children {
		out = flatten(out, child, path)
	}
	return out
}

// Validate checks that every option has a non-blank id and label and that
// ids are unique. Surrounding whitespace is trimmed in place.
func (c *Catalog) Validate() error {
	seen := make(map[string]int, len(c.Options))
	for i := range c.Options {
		opt := &c.Options[i]
		opt.ID = strings.TrimSpace(opt.ID)
		opt.Label = strings.TrimSpace(opt.Label)

		if opt.ID == "" {
			return apperrors.ValidationError(
				fmt.Sprintf("catalog %s: option %d has an empty id", c.Name, i), nil).
				WithDetail("catalog", c.Name)
		}
		if opt.Label == "" {
			return apperrors.New(apperrors.ErrCodeEmptyLabel,
				fmt.Sprintf("catalog %s: option %q has an empty label", c.Name, opt.ID), nil).
				WithDetail("catalog", c.Name).
				WithDetail("id", opt.ID)
		}
		if prev, dup := seen[opt.ID]; dup {
			return apperrors.New(apperrors.ErrCodeDuplicateID,
				fmt.Sprintf("catalog %s: id %q used by options %d and %d", c.Name, opt.ID, prev, i), nil).
				WithDetail("catalog", c.Name).
				WithDetail("id", opt.ID)
		}
		seen[opt.ID] = i
	}
	return nil
}

// Indexer returns an indexer over the catalog's options.
func (c *Catalog) Indexer() *indexer.Indexer {
	return indexer.New(c.Options)
}

// Lookup finds an option by label, ignoring case. The first match in
// catalog order wins.
func (c *Catalog) Lookup(label string) (indexer.Option, bool) {
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(label))
	for _, opt := range c.Options {
		if fold.String(opt.Label) == want {
			return opt, true
		}
	}
	return indexer.Option{}, false
}

// ByID finds an option by its id.
func (c *Catalog) ByID(id string) (indexer.Option, bool) {
	for _, opt := range c.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return indexer.Option{}, false
}

// Slug lower-cases s and joins its letter and digit runs with hyphens.
func Slug(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// Package configs embeds the configuration templates and built-in catalogs
// shipped with optindex.
//
// Templates are written by `optindex config init`. Catalogs are the option
// lists the marketplace sell form picks from; extra catalogs named in
// config are layered over them at runtime (see internal/catalog).
//
// Edit the .yaml files in this directory and rebuild to change them.
package configs

import (
	"embed"
	"io/fs"
)

// UserConfigTemplate is written to ~/.config/optindex/config.yaml by
// `optindex config init`.
//
//go:embed user-config.example.yaml
var UserConfigTemplate string

// ProjectConfigTemplate is written to .optindex.yaml by
// `optindex config init --project`.
//
//go:embed project-config.example.yaml
var ProjectConfigTemplate string

//go:embed catalogs/*.yaml
var catalogFS embed.FS

// Catalogs returns the built-in catalog files rooted at their directory,
// so entries are named "brands.yaml", "sizes.yaml" and so on.
func Catalogs() fs.FS {
	sub, err := fs.Sub(catalogFS, "catalogs")
	if err != nil {
		// The pattern is fixed at build time; Sub cannot fail on it.
		panic(err)
	}
	return sub
}

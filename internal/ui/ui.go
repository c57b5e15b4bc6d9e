// Package ui provides the interactive picker sheet: a searchable,
// sectioned option list with a letter rail for jumping between sections.
//
// NewPicker chooses a bubbletea sheet for interactive terminals and a
// line-driven plain picker for pipes, CI and --plain.
package ui

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/Aman-CERP/optindex/internal/selection"
	"github.com/Aman-CERP/optindex/pkg/indexer"
)

// Choice is the outcome of a picker session.
type Choice struct {
	// Option is the picked option in single-select mode.
	Option indexer.Option
	// Colors is the final selection in colour mode.
	Colors []string
	// Cancelled is true when the user backed out without choosing.
	Cancelled bool
}

// Picker runs one selection session.
type Picker interface {
	Pick(ctx context.Context) (Choice, error)
}

// Config configures a picker.
type Config struct {
	Input      io.Reader
	Output     io.Writer
	Title      string
	Catalog    []indexer.Option
	Alphabet   []string
	PageHeight int
	ForcePlain bool
	NoColor    bool
	// Colors switches to multi-select: enter toggles the highlighted
	// option in the set and esc finishes.
	Colors *selection.ColorSet
}

// ConfigOption is a function that modifies Config.
type ConfigOption func(*Config)

// WithForcePlain forces the plain picker.
func WithForcePlain(force bool) ConfigOption {
	return func(c *Config) {
		c.ForcePlain = force
	}
}

// WithNoColor disables color output.
func WithNoColor(noColor bool) ConfigOption {
	return func(c *Config) {
		c.NoColor = noColor
	}
}

// WithTitle sets the sheet title.
func WithTitle(title string) ConfigOption {
	return func(c *Config) {
		c.Title = title
	}
}

// WithAlphabet sets the rail letters. Empty keeps A-Z.
func WithAlphabet(letters []string) ConfigOption {
	return func(c *Config) {
		if len(letters) > 0 {
			c.Alphabet = letters
		}
	}
}

// WithPageHeight sets the number of visible list rows.
func WithPageHeight(h int) ConfigOption {
	return func(c *Config) {
		if h > 0 {
			c.PageHeight = h
		}
	}
}

// WithColors enables colour multi-select.
func WithColors(set *selection.ColorSet) ConfigOption {
	return func(c *Config) {
		c.Colors = set
	}
}

// NewConfig creates a Config for catalog with defaults applied.
func NewConfig(in io.Reader, out io.Writer, catalog []indexer.Option, opts ...ConfigOption) Config {
	cfg := Config{
		Input:      in,
		Output:     out,
		Catalog:    catalog,
		Alphabet:   indexer.Alphabet,
		PageHeight: 15,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// NewPicker returns the sheet for interactive terminals and the plain
// picker for everything else.
func NewPicker(cfg Config) Picker {
	if cfg.ForcePlain || !IsTTY(cfg.Output) || !isTTYReader(cfg.Input) || DetectCI() {
		return NewPlainPicker(cfg)
	}
	return NewSheet(cfg)
}

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	if w == nil {
		return false
	}
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

func isTTYReader(r io.Reader) bool {
	if f, ok := r.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// DetectNoColor checks if NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}

// DetectCI checks if running in a CI environment.
func DetectCI() bool {
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "TRAVIS"}
	for _, v := range ciVars {
		if _, exists := os.LookupEnv(v); exists {
			return true
		}
	}
	return false
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	apperrors "github.com/Aman-CERP/optindex/internal/errors"
)

// ProjectConfigName is the per-directory configuration file.
const ProjectConfigName = ".optindex.yaml"

// Config represents the complete optindex configuration.
type Config struct {
	Version  int            `yaml:"version" json:"version"`
	Catalogs CatalogsConfig `yaml:"catalogs" json:"catalogs"`
	Picker   PickerConfig   `yaml:"picker" json:"picker"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	Server   ServerConfig   `yaml:"server" json:"server"`
}

// CatalogsConfig selects which catalogs are available.
type CatalogsConfig struct {
	// Default is the catalog used when --catalog is not given.
	Default string `yaml:"default" json:"default"`
	// Files are extra catalog YAML files merged over the built-ins.
	// Relative paths resolve against the config file that named them.
	Files []string `yaml:"files" json:"files"`
}

// PickerConfig tunes the interactive sheet and the colour selection.
type PickerConfig struct {
	// Alphabet is the letter rail. Empty means A-Z.
	Alphabet []string `yaml:"alphabet" json:"alphabet"`
	// PageHeight is the number of list rows shown at once.
	PageHeight int `yaml:"page_height" json:"page_height"`
	// MaxColors bounds the colour selection (default: 2).
	MaxColors int `yaml:"max_colors" json:"max_colors"`
	// ExclusiveColor clears every other colour when chosen.
	ExclusiveColor string `yaml:"exclusive_color" json:"exclusive_color"`
}

// OutputConfig controls command output.
type OutputConfig struct {
	// Format is "text" or "json".
	Format  string `yaml:"format" json:"format"`
	NoColor bool   `yaml:"no_color" json:"no_color"`
}

// ServerConfig configures the tool server.
type ServerConfig struct {
	Transport string `yaml:"transport" json:"transport"`
	LogLevel  string `yaml:"log_level" json:"log_level"`
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Catalogs: CatalogsConfig{
			Default: "brands",
		},
		Picker: PickerConfig{
			PageHeight:     15,
			MaxColors:      2,
			ExclusiveColor: "multicolor",
		},
		Output: OutputConfig{
			Format: "text",
		},
		Server: ServerConfig{
			Transport: "stdio",
			LogLevel:  "info",
		},
	}
}

// GetUserConfigPath returns the path to the user/global configuration file.
// It follows XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/optindex/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/optindex/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "optindex", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "optindex", "config.yaml")
	}
	return filepath.Join(home, ".config", "optindex", "config.yaml")
}

// GetUserConfigDir returns the directory containing the user configuration.
func GetUserConfigDir() string {
	return filepath.Dir(GetUserConfigPath())
}

// UserConfigExists returns true if the user configuration file exists.
func UserConfigExists() bool {
	return fileExists(GetUserConfigPath())
}

// LoadUserConfig loads the user configuration file.
// Returns nil config and nil error if the file doesn't exist.
func LoadUserConfig() (*Config, error) {
	configPath := GetUserConfigPath()
	if !fileExists(configPath) {
		return nil, nil
	}

	var cfg Config
	if err := readYAML(configPath, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load loads configuration for the given directory.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User/global config (~/.config/optindex/config.yaml)
//  3. Project config (.optindex.yaml in dir)
//  4. Environment variables (OPTINDEX_*)
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	userCfg, err := LoadUserConfig()
	if err != nil {
		return nil, err
	}
	if userCfg != nil {
		cfg.mergeWith(userCfg)
	}

	if err := cfg.loadFromFile(dir); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.ConfigError(fmt.Sprintf("invalid configuration: %v", err), err).
			WithSuggestion("Run 'optindex config show' to inspect the merged configuration")
	}

	return cfg, nil
}

// ProjectConfigPath returns the project config file in dir, or "" if none.
// .optindex.yaml takes precedence over .optindex.yml.
func ProjectConfigPath(dir string) string {
	for _, name := range []string{ProjectConfigName, ".optindex.yml"} {
		p := filepath.Join(dir, name)
		if fileExists(p) {
			return p
		}
	}
	return ""
}

func (c *Config) loadFromFile(dir string) error {
	path := ProjectConfigPath(dir)
	if path == "" {
		return nil
	}

	var parsed Config
	if err := readYAML(path, &parsed); err != nil {
		return err
	}
	c.mergeWith(&parsed)
	return nil
}

// readYAML parses path into cfg and resolves relative catalog files
// against the file's directory.
func readYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.New(apperrors.ErrCodeConfigPermission,
			fmt.Sprintf("failed to read config file %s", path), err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return apperrors.ConfigError(fmt.Sprintf("failed to parse config file %s", path), err).
			WithDetail("path", path)
	}

	base := filepath.Dir(path)
	for i, f := range cfg.Catalogs.Files {
		if f != "" && !filepath.IsAbs(f) {
			cfg.Catalogs.Files[i] = filepath.Join(base, f)
		}
	}
	return nil
}

// mergeWith merges non-zero values from other into c.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if other.Catalogs.Default != "" {
		c.Catalogs.Default = other.Catalogs.Default
	}
	if len(other.Catalogs.Files) > 0 {
		// Accumulate: project catalogs layer on top of user catalogs.
		c.Catalogs.Files = append(c.Catalogs.Files, other.Catalogs.Files...)
	}

	if len(other.Picker.Alphabet) > 0 {
		c.Picker.Alphabet = other.Picker.Alphabet
	}
	if other.Picker.PageHeight != 0 {
		c.Picker.PageHeight = other.Picker.PageHeight
	}
	if other.Picker.MaxColors != 0 {
		c.Picker.MaxColors = other.Picker.MaxColors
	}
	if other.Picker.ExclusiveColor != "" {
		c.Picker.ExclusiveColor = other.Picker.ExclusiveColor
	}

	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
	if other.Output.NoColor {
		c.Output.NoColor = true
	}

	if other.Server.Transport != "" {
		c.Server.Transport = other.Server.Transport
	}
	if other.Server.LogLevel != "" {
		c.Server.LogLevel = other.Server.LogLevel
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("OPTINDEX_CATALOG"); v != "" {
		c.Catalogs.Default = v
	}
	if v := os.Getenv("OPTINDEX_CATALOG_FILES"); v != "" {
		for _, f := range strings.Split(v, string(os.PathListSeparator)) {
			if f = strings.TrimSpace(f); f != "" {
				c.Catalogs.Files = append(c.Catalogs.Files, f)
			}
		}
	}
	if v := os.Getenv("OPTINDEX_PAGE_HEIGHT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Picker.PageHeight = n
		}
	}
	if v := os.Getenv("OPTINDEX_MAX_COLORS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Picker.MaxColors = n
		}
	}
	if v := os.Getenv("OPTINDEX_FORMAT"); v != "" {
		c.Output.Format = v
	}
	// NO_COLOR is the cross-tool convention; OPTINDEX_NO_COLOR is ours.
	if os.Getenv("NO_COLOR") != "" {
		c.Output.NoColor = true
	}
	if v := os.Getenv("OPTINDEX_NO_COLOR"); v != "" {
		c.Output.NoColor = strings.ToLower(v) == "true" || v == "1"
	}
	if v := os.Getenv("OPTINDEX_LOG_LEVEL"); v != "" {
		c.Server.LogLevel = v
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Catalogs.Default == "" {
		return fmt.Errorf("catalogs.default must not be empty")
	}

	if c.Picker.PageHeight < 3 {
		return fmt.Errorf("picker.page_height must be at least 3, got %d", c.Picker.PageHeight)
	}
	if c.Picker.MaxColors < 1 {
		return fmt.Errorf("picker.max_colors must be at least 1, got %d", c.Picker.MaxColors)
	}

	seen := make(map[string]bool, len(c.Picker.Alphabet))
	for _, letter := range c.Picker.Alphabet {
		if utf8.RuneCountInString(letter) != 1 {
			return fmt.Errorf("picker.alphabet entries must be single characters, got %q", letter)
		}
		if seen[letter] {
			return fmt.Errorf("picker.alphabet contains %q twice", letter)
		}
		seen[letter] = true
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Output.Format)] {
		return fmt.Errorf("output.format must be 'text' or 'json', got %s", c.Output.Format)
	}

	if strings.ToLower(c.Server.Transport) != "stdio" {
		return fmt.Errorf("server.transport must be 'stdio', got %s", c.Server.Transport)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Server.LogLevel)] {
		return fmt.Errorf("server.log_level must be 'debug', 'info', 'warn', or 'error', got %s", c.Server.LogLevel)
	}

	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

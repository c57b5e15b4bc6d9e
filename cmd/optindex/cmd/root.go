// Package cmd provides the CLI commands for optindex.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/optindex/internal/catalog"
	"github.com/Aman-CERP/optindex/internal/config"
	apperrors "github.com/Aman-CERP/optindex/internal/errors"
	"github.com/Aman-CERP/optindex/internal/logging"
	"github.com/Aman-CERP/optindex/internal/output"
	"github.com/Aman-CERP/optindex/internal/ui"
	"github.com/Aman-CERP/optindex/pkg/version"
)

// Debug logging flag
var (
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the optindex CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optindex",
		Short: "Searchable, alphabetically indexed option lists",
		Long: `optindex filters a catalog of selectable options (brands, sizes,
colours, categories) by a search query and groups the matches into
alphabetical sections with a jump index for the letter rail.

Use it from the terminal with 'group', 'jump' and 'pick', or expose it
to AI clients with 'serve'.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("optindex version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.optindex/logs/")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newGroupCmd())
	cmd.AddCommand(newJumpCmd())
	cmd.AddCommand(newCatalogsCmd())
	cmd.AddCommand(newPickCmd())
	cmd.AddCommand(newColorsCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging enables file logging when --debug is set.
func startLogging(_ *cobra.Command, _ []string) error {
	if !debugMode {
		return nil
	}
	logger, cleanup, err := logging.Setup(logging.DebugConfig())
	if err != nil {
		return fmt.Errorf("failed to setup debug logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	slog.Info("debug_logging_enabled",
		slog.String("log_file", logging.DefaultLogPath()),
		slog.String("version", version.Version))
	return nil
}

func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		slog.Info("debug_logging_stopped")
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command and prints any error in CLI form.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		_, _ = fmt.Fprint(root.ErrOrStderr(), apperrors.FormatForCLI(err))
	}
	return err
}

// loadConfig loads the merged configuration for the working directory.
func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return config.Load(cwd)
}

// loadEnv loads configuration and the catalog registry it names.
func loadEnv() (*config.Config, *catalog.Registry, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	reg, err := catalog.Open(cfg.Catalogs.Files)
	if err != nil {
		return nil, nil, err
	}
	return cfg, reg, nil
}

// newWriter returns an output writer styled only for colour terminals.
func newWriter(cmd *cobra.Command, cfg *config.Config) *output.Writer {
	w := cmd.OutOrStdout()
	color := !cfg.Output.NoColor && !ui.DetectNoColor() && ui.IsTTY(w)
	return output.New(w).WithColor(color)
}

// resolveFormat returns flag when set, else the configured format.
func resolveFormat(flag string, cfg *config.Config) (string, error) {
	if flag == "" {
		flag = cfg.Output.Format
	}
	switch flag {
	case "text", "json":
		return flag, nil
	default:
		return "", apperrors.ValidationError(fmt.Sprintf("invalid format %q", flag), nil).
			WithSuggestion("Use --format text or --format json")
	}
}

// catalogName returns flag when set, else the configured default catalog.
func catalogName(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.Catalogs.Default
}

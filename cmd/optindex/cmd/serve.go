package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/optindex/internal/catalog"
	"github.com/Aman-CERP/optindex/internal/logging"
	"github.com/Aman-CERP/optindex/internal/mcp"
)

func newServeCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Long: `Start the Model Context Protocol server on stdin/stdout.

Tools: filter_and_group, resolve_jump, list_catalogs. Every catalog is
also published as a catalog://<name> resource.

Stdout carries the protocol, so logs go to ~/.optindex/logs/ only.

With --watch, catalog files listed under catalogs.files are reloaded
when they change on disk.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, watch)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Reload catalog files when they change")

	return cmd
}

func runServe(ctx context.Context, watch bool) error {
	cfg, reg, err := loadEnv()
	if err != nil {
		return err
	}

	// Nothing may reach stdout except JSON-RPC messages.
	if !debugMode {
		cleanup, err := logging.SetupQuiet(cfg.Server.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to setup logging: %w", err)
		}
		defer cleanup()
	}

	srv, err := mcp.NewServer(reg, cfg)
	if err != nil {
		return err
	}
	if watch && len(cfg.Catalogs.Files) > 0 {
		w, err := catalog.NewWatcher(reg, cfg.Catalogs.Files, srv.PublishCatalog)
		if err != nil {
			return err
		}
		go func() { _ = w.Run(ctx) }()
	}

	slog.Info("serve_started",
		slog.String("transport", cfg.Server.Transport),
		slog.Int("catalogs", len(reg.Names())),
		slog.Bool("watch", watch))

	return srv.Serve(ctx, cfg.Server.Transport)
}

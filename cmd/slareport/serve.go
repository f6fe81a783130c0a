package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/slareport/internal/config"
	"github.com/nao1215/slareport/internal/log"
	"github.com/nao1215/slareport/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the upload web server",
		Long: `Serve starts a web server with an upload form. Users upload a CSV or XLSX
export, enter a date and get the SLA report as a web page.

Uploads are processed in memory and never stored.

Endpoints:
  GET  /         upload form
  POST /report   report (add ?format=json or ?format=markdown for other formats)
  GET  /metrics  Prometheus metrics
  GET  /ping     heartbeat

Examples:
  slareport serve
  slareport serve --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("addr", "a", config.DefaultListenAddr,
		"Address to listen on")
	cmd.Flags().Int64("max-upload", config.DefaultMaxUploadSize,
		"Largest accepted upload in bytes")
	addConfigFlag(cmd)

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildServeConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.ValidateServe(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runServe(ctx, cfg)
}

// buildServeConfig creates a Config from the serve command flags.
// Flags given explicitly win over the config file.
func buildServeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadBaseConfig(cmd)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("addr") || cfg.ListenAddr == "" {
		if cfg.ListenAddr, err = cmd.Flags().GetString("addr"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("max-upload") {
		if cfg.MaxUploadSize, err = cmd.Flags().GetInt64("max-upload"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// runServe runs the server until ctx is cancelled.
func runServe(ctx context.Context, cfg *config.Config) error {
	// Request logs are JSON so they can be shipped to a log aggregator.
	logger := log.NewJSONLogger(os.Stderr, cfg.Verbose)

	srv := server.New(
		newEngine(cfg, logger),
		server.WithLogger(logger),
		server.WithMaxUploadSize(cfg.MaxUploadSize),
	)

	return srv.ListenAndServe(ctx, cfg.ListenAddr)
}

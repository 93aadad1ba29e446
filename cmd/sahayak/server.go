package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hyperjump/sahayak/internal/server"
	"github.com/hyperjump/sahayak/internal/watcher"
)

func newServerCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(opts)
		},
	}
}

func runServer(opts *rootOptions) error {
	cfg, logger, err := opts.setup(true)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("config loaded", zap.String("config_path", opts.configPath), zap.Bool("debug", cfg.Debug || opts.debug))

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize components", zap.Error(err))
		return err
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if rl := components.Reloadable; rl != nil && cfg.Catalog.Path != "" && cfg.Catalog.WatchOrDefault() {
		m := components.Metrics
		w, err := watcher.New([]string{cfg.Catalog.Path}, func(path string) {
			logger.Info("catalog file changed", zap.String("path", path))
			m.ObserveReload(rl.Reload())
		}, watcher.WithLogger(logger))
		if err != nil {
			return err
		}
		if err := w.Start(watchCtx); err != nil {
			return err
		}
		logger.Info("watching catalog", zap.Strings("files", w.Files()))
		defer w.Stop()
	}

	srv := server.NewServer(components.Assistant, &cfg.Server, logger, components.Registry)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigChan:
	case err := <-errCh:
		logger.Error("Server failed", zap.Error(err))
		return err
	}

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(ctx)
}

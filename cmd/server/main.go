package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mmynk/moneysplits/internal/app"
	"github.com/mmynk/moneysplits/internal/config"
	"github.com/mmynk/moneysplits/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		slog.Error("Failed to shutdown gracefully", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/House-of-Events/mike/internal/app"
	"github.com/House-of-Events/mike/internal/config"
	"github.com/House-of-Events/mike/internal/platform/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("ingestion run failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	sourceName := cfg.DefaultSource
	if len(os.Args) > 1 {
		sourceName = os.Args[1]
	}

	summary, err := a.Run(ctx, sourceName)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "ingestion run finished",
		"source", sourceName,
		"persisted", summary.Persisted,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	return nil
}

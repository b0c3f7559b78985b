package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/customers-demo/internal/app"
	"github.com/samvad-hq/customers-demo/internal/config"
	"github.com/samvad-hq/customers-demo/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "customers-demo failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("customers-demo starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	demo, err := app.NewDemo(ctx, cfg, log, app.Options{})
	if err != nil {
		logger.ErrorObj("failed to initialize demo", "error", err)
		return err
	}

	if err := demo.Run(ctx); err != nil {
		logger.ErrorObj("demo run failed", "error", err)
		return fmt.Errorf("demo run: %w", err)
	}

	return nil
}

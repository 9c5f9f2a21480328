package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"resumelens/internal/cli"
	"resumelens/internal/config"
	"resumelens/internal/errors"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "resumelens: %v\n", err)
		os.Exit(1)
	}
}

// run keeps the exit path in one place so deferred cleanup still fires
// before the process terminates.
func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := errors.New(cfg.App.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting resumelens",
		"version", cli.Version,
		"log_level", cfg.App.LogLevel,
		"keywords_file", cfg.Matcher.KeywordsFile)

	return cli.Execute(ctx, cfg, logger)
}

// Command report renders the summary statistics and the cumulative-return
// chart from the standardized dataset.
package main

import (
	"context"
	"log/slog"
	"os"

	"fxreturns/internal/config"
	"fxreturns/internal/infrastructure"
	"fxreturns/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	paths := cfg.ResolvePaths()
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("failed to create directories", "error", err)
		os.Exit(1)
	}

	env := &pipeline.Environment{Config: cfg, Paths: paths, Logger: logger}
	stage := pipeline.NewReportStage()

	ctx := infrastructure.EnsureRunID(context.Background())
	if err := stage.Validate(env); err != nil {
		logger.ErrorContext(ctx, "report failed", "error", err)
		os.Exit(1)
	}
	if err := stage.Run(ctx, env); err != nil {
		logger.ErrorContext(ctx, "report failed", "error", err)
		os.Exit(1)
	}
}

// Command format converts the long-form returns snapshot into the
// standardized dataset consumed by downstream tooling.
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

	env := &pipeline.Environment{Config: cfg, Paths: cfg.ResolvePaths(), Logger: logger}
	stage := pipeline.NewFormatStage()

	ctx := infrastructure.EnsureRunID(context.Background())
	if err := stage.Validate(env); err != nil {
		logger.ErrorContext(ctx, "format failed", "error", err)
		os.Exit(1)
	}
	if err := stage.Run(ctx, env); err != nil {
		logger.ErrorContext(ctx, "format failed", "error", err)
		os.Exit(1)
	}
}

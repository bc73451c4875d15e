// Command calc computes the implied daily returns from the raw snapshots and
// writes the long-form returns snapshot.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"fxreturns/internal/config"
	"fxreturns/internal/fx"
	"fxreturns/internal/infrastructure"
	"fxreturns/internal/pipeline"
)

func main() {
	endDate := flag.String("end-date", "", "inclusive cutoff (YYYY-MM-DD), overrides FX_ENGINE_END_DATE")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *endDate != "" {
		cfg.Engine.EndDate = *endDate
		if err := cfg.Validate(); err != nil {
			slog.Error("invalid end date", "error", err)
			os.Exit(1)
		}
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	paths := cfg.ResolvePaths()
	env := &pipeline.Environment{Config: cfg, Paths: paths, Logger: logger}
	stage := pipeline.NewCalcStage(fx.DefaultUniverse())

	ctx := infrastructure.EnsureRunID(context.Background())
	if err := stage.Validate(env); err != nil {
		logger.ErrorContext(ctx, "calc failed", "error", err)
		os.Exit(1)
	}
	if err := stage.Run(ctx, env); err != nil {
		logger.ErrorContext(ctx, "calc failed", "error", err)
		os.Exit(1)
	}
}

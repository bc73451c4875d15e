// Command pipeline runs the full batch sequence: acquire raw market data,
// compute implied returns, standardize the dataset, and render the reports.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"fxreturns/internal/config"
	"fxreturns/internal/fx"
	"fxreturns/internal/infrastructure"
	"fxreturns/internal/pipeline"
	"fxreturns/internal/provider"
)

func main() {
	endDate := flag.String("end-date", "", "inclusive cutoff (YYYY-MM-DD), overrides FX_ENGINE_END_DATE")
	skipPull := flag.Bool("skip-pull", false, "reuse existing raw snapshots instead of pulling")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *endDate != "" {
		cfg.Engine.EndDate = *endDate
	}
	if *skipPull {
		cfg.Provider.SkipPull = true
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
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

	providers, err := infrastructure.InitializeOTel(nil, logger)
	if err != nil {
		logger.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(ctx); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	metrics, err := infrastructure.CreateBusinessMetrics(providers.Meter)
	if err != nil {
		logger.Error("failed to create metrics", "error", err)
		os.Exit(1)
	}

	universe := fx.DefaultUniverse()
	client := provider.NewClient(cfg.Provider, logger)
	gate := provider.NewGate(nil, nil)

	env := &pipeline.Environment{
		Config:  cfg,
		Paths:   paths,
		Logger:  logger,
		Metrics: metrics,
	}
	runner := pipeline.NewRunner(env, pipeline.DefaultStages(client, gate, universe), providers.Tracer)

	ctx := infrastructure.EnsureRunID(context.Background())
	if _, err := runner.Run(ctx); err != nil {
		logger.ErrorContext(ctx, "pipeline failed", "error", err)
		os.Exit(1)
	}
}

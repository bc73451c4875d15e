// Command fetch acquires the raw spot and interest-rate snapshots from the
// market-data service, or imports a manually exported workbook.
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
	"fxreturns/internal/provider"
	"fxreturns/internal/snapshot"
)

func main() {
	spotWorkbook := flag.String("spot-workbook", "", "import spot rates from this .xlsx export instead of pulling")
	rateWorkbook := flag.String("rate-workbook", "", "import interest rates from this .xlsx export instead of pulling")
	flag.Parse()

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

	ctx := infrastructure.EnsureRunID(context.Background())

	if *spotWorkbook != "" || *rateWorkbook != "" {
		if err := importWorkbooks(ctx, paths, logger, *spotWorkbook, *rateWorkbook); err != nil {
			logger.ErrorContext(ctx, "workbook import failed", "error", err)
			os.Exit(1)
		}
		return
	}

	env := &pipeline.Environment{Config: cfg, Paths: paths, Logger: logger}
	stage := pipeline.NewFetchStage(
		provider.NewClient(cfg.Provider, logger),
		provider.NewGate(nil, nil),
		fx.DefaultUniverse(),
	)
	if err := stage.Validate(env); err != nil {
		logger.ErrorContext(ctx, "fetch failed", "error", err)
		os.Exit(1)
	}
	if err := stage.Run(ctx, env); err != nil {
		logger.ErrorContext(ctx, "fetch failed", "error", err)
		os.Exit(1)
	}
}

func importWorkbooks(ctx context.Context, paths *config.Paths, logger *slog.Logger, spotPath, ratePath string) error {
	if spotPath != "" {
		frame, err := provider.ImportWorkbook(spotPath, logger)
		if err != nil {
			return err
		}
		if err := snapshot.WriteFrame(paths.SpotSnapshot(), frame); err != nil {
			return err
		}
		logger.InfoContext(ctx, "spot snapshot imported",
			slog.String("source", spotPath), slog.Int("rows", frame.Len()))
	}
	if ratePath != "" {
		frame, err := provider.ImportWorkbook(ratePath, logger)
		if err != nil {
			return err
		}
		if err := snapshot.WriteFrame(paths.RateSnapshot(), frame); err != nil {
			return err
		}
		logger.InfoContext(ctx, "interest-rate snapshot imported",
			slog.String("source", ratePath), slog.Int("rows", frame.Len()))
	}
	return nil
}

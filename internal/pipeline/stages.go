package pipeline

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"fxreturns/internal/config"
	"fxreturns/internal/dataset"
	apperrors "fxreturns/internal/errors"
	"fxreturns/internal/fx"
	"fxreturns/internal/provider"
	"fxreturns/internal/report"
	"fxreturns/internal/snapshot"
)

// DefaultStages builds the standard four-stage sequence.
func DefaultStages(client *provider.Client, gate *provider.Gate, universe fx.Universe) []Stage {
	return []Stage{
		NewFetchStage(client, gate, universe),
		NewCalcStage(universe),
		NewFormatStage(),
		NewReportStage(),
	}
}

func countRows(ctx context.Context, env *Environment, stageID string, rows int) {
	if env.Metrics != nil {
		env.Metrics.RowsProcessed.Add(ctx, int64(rows), metric.WithAttributes(
			attribute.String("stage", stageID)))
	}
}

func countWrite(ctx context.Context, env *Environment, file string) {
	if env.Metrics != nil {
		env.Metrics.SnapshotWritesTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("file", file)))
	}
}

// FetchStage acquires the raw spot and interest-rate snapshots, either by
// pulling from the market-data service or by reusing the existing files when
// the pull is skipped.
type FetchStage struct {
	client   *provider.Client
	gate     *provider.Gate
	universe fx.Universe
}

func NewFetchStage(client *provider.Client, gate *provider.Gate, universe fx.Universe) *FetchStage {
	return &FetchStage{client: client, gate: gate, universe: universe}
}

func (s *FetchStage) ID() string   { return "fetch" }
func (s *FetchStage) Name() string { return "Acquire market data" }

func (s *FetchStage) Validate(env *Environment) error {
	if env.Config.Provider.SkipPull {
		return requireSnapshots(env.Paths.SpotSnapshot(), env.Paths.RateSnapshot())
	}
	return nil
}

func (s *FetchStage) Run(ctx context.Context, env *Environment) error {
	if env.Config.Provider.SkipPull {
		env.Logger.InfoContext(ctx, "live pull disabled, using existing snapshots")
		return nil
	}

	allowed, err := s.gate.Confirm()
	if err != nil {
		return err
	}
	if !allowed {
		return apperrors.NewAcquisitionError("terminal session not confirmed open", nil)
	}

	cutoff, err := env.Config.EndDate()
	if err != nil {
		return apperrors.NewConfigError("invalid end date", err)
	}

	md, err := s.client.FetchMarketData(ctx, s.universe, cutoff)
	if err != nil {
		return err
	}

	if err := snapshot.WriteFrame(env.Paths.SpotSnapshot(), md.Spot); err != nil {
		return err
	}
	countWrite(ctx, env, config.SpotSnapshotFile)
	if err := snapshot.WriteFrame(env.Paths.RateSnapshot(), md.Rates); err != nil {
		return err
	}
	countWrite(ctx, env, config.RateSnapshotFile)

	countRows(ctx, env, s.ID(), md.Spot.Len()+md.Rates.Len())
	env.Logger.InfoContext(ctx, "raw snapshots written",
		slog.Int("spot_rows", md.Spot.Len()),
		slog.Int("rate_rows", md.Rates.Len()))
	return nil
}

// CalcStage runs the return engine over the raw snapshots and writes the
// intermediate long-form returns snapshot.
type CalcStage struct {
	universe fx.Universe
}

func NewCalcStage(universe fx.Universe) *CalcStage {
	return &CalcStage{universe: universe}
}

func (s *CalcStage) ID() string   { return "calc" }
func (s *CalcStage) Name() string { return "Compute implied returns" }

func (s *CalcStage) Validate(env *Environment) error {
	return requireSnapshots(env.Paths.SpotSnapshot(), env.Paths.RateSnapshot())
}

func (s *CalcStage) Run(ctx context.Context, env *Environment) error {
	cutoff, err := env.Config.EndDate()
	if err != nil {
		return apperrors.NewConfigError("invalid end date", err)
	}

	engine := fx.NewEngine(s.universe, env.Config.Engine.Strict, env.Logger)
	observations, err := engine.CalculateFromSnapshots(ctx,
		env.Paths.SpotSnapshot(), env.Paths.RateSnapshot(), cutoff)
	if err != nil {
		return err
	}

	if err := fx.SaveObservations(env.Paths.ReturnsSnapshot(), observations); err != nil {
		return err
	}
	countWrite(ctx, env, config.ReturnsSnapshotFile)
	countRows(ctx, env, s.ID(), len(observations))
	return nil
}

// FormatStage converts the long-form returns to the standardized dataset.
type FormatStage struct{}

func NewFormatStage() *FormatStage { return &FormatStage{} }

func (s *FormatStage) ID() string   { return "format" }
func (s *FormatStage) Name() string { return "Standardize dataset" }

func (s *FormatStage) Validate(env *Environment) error {
	return requireSnapshots(env.Paths.ReturnsSnapshot())
}

func (s *FormatStage) Run(ctx context.Context, env *Environment) error {
	observations, err := fx.LoadObservations(env.Paths.ReturnsSnapshot())
	if err != nil {
		return err
	}

	points := dataset.Standardize(observations)
	if err := dataset.SaveStandardized(env.Paths.StandardizedSnapshot(), points); err != nil {
		return err
	}
	countWrite(ctx, env, config.StandardizedSnapshotFile)
	countRows(ctx, env, s.ID(), len(points))

	env.Logger.InfoContext(ctx, "standardized dataset written",
		slog.Int("rows_in", len(observations)),
		slog.Int("rows_out", len(points)))
	return nil
}

// ReportStage renders the summary statistics and the cumulative-return chart
// from the standardized dataset.
type ReportStage struct{}

func NewReportStage() *ReportStage { return &ReportStage{} }

func (s *ReportStage) ID() string   { return "report" }
func (s *ReportStage) Name() string { return "Generate reports" }

func (s *ReportStage) Validate(env *Environment) error {
	return requireSnapshots(env.Paths.StandardizedSnapshot())
}

func (s *ReportStage) Run(ctx context.Context, env *Environment) error {
	points, err := dataset.LoadStandardized(env.Paths.StandardizedSnapshot())
	if err != nil {
		return err
	}

	summaries := report.Summarize(points)
	if err := report.WriteSummaryCSV(env.Paths.OutputPath(config.SummaryCSVFile), summaries); err != nil {
		return err
	}
	if err := report.WriteSummaryHTML(env.Paths.OutputPath(config.SummaryHTMLFile), summaries); err != nil {
		return err
	}
	if err := report.WriteCumulativeChart(env.Paths.OutputPath(config.ChartHTMLFile), points); err != nil {
		return err
	}
	countRows(ctx, env, s.ID(), len(summaries))

	env.Logger.InfoContext(ctx, "reports written",
		slog.Int("currencies", len(summaries)),
		slog.String("output_dir", env.Paths.OutputDir))
	return nil
}

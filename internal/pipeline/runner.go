package pipeline

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"fxreturns/internal/infrastructure"
)

// Runner executes stages sequentially and fail-fast: the first stage error
// aborts the run and marks the remaining stages skipped.
type Runner struct {
	env    *Environment
	stages []Stage
	tracer trace.Tracer
}

// NewRunner builds a runner over the given stage sequence. tracer may be nil
// to disable span creation.
func NewRunner(env *Environment, stages []Stage, tracer trace.Tracer) *Runner {
	return &Runner{
		env:    env,
		stages: stages,
		tracer: tracer,
	}
}

// Run executes every stage in order. The returned slice has one result per
// stage regardless of where the run stopped.
func (r *Runner) Run(ctx context.Context) ([]StageResult, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	logger := r.env.Logger

	logger.InfoContext(ctx, "pipeline run starting", slog.Int("stages", len(r.stages)))
	start := time.Now()

	results := make([]StageResult, 0, len(r.stages))
	for i, stage := range r.stages {
		result := r.runStage(ctx, stage)
		results = append(results, result)
		if result.Err != nil {
			for _, rest := range r.stages[i+1:] {
				results = append(results, StageResult{
					ID:     rest.ID(),
					Name:   rest.Name(),
					Status: StageSkipped,
				})
			}
			logger.ErrorContext(ctx, "pipeline run failed",
				slog.String("stage", stage.ID()),
				slog.String("error", result.Err.Error()))
			return results, result.Err
		}
	}

	logger.InfoContext(ctx, "pipeline run completed",
		slog.Duration("duration", time.Since(start)))
	return results, nil
}

func (r *Runner) runStage(ctx context.Context, stage Stage) StageResult {
	logger := r.env.Logger
	logger.InfoContext(ctx, "stage starting",
		slog.String("stage", stage.ID()),
		slog.String("name", stage.Name()))

	var span trace.Span
	if r.tracer != nil {
		ctx, span = r.tracer.Start(ctx, "pipeline."+stage.ID())
		defer span.End()
	}

	start := time.Now()
	err := stage.Validate(r.env)
	if err == nil {
		err = stage.Run(ctx, r.env)
	}
	duration := time.Since(start)

	status := StageCompleted
	if err != nil {
		status = StageFailed
		if span != nil {
			span.RecordError(err)
		}
	}

	if r.env.Metrics != nil {
		r.env.Metrics.StageExecutionsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("stage", stage.ID()),
			attribute.String("status", string(status))))
		r.env.Metrics.StageDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
			attribute.String("stage", stage.ID())))
	}

	logger.InfoContext(ctx, "stage finished",
		slog.String("stage", stage.ID()),
		slog.String("status", string(status)),
		slog.Duration("duration", duration))

	return StageResult{
		ID:       stage.ID(),
		Name:     stage.Name(),
		Status:   status,
		Duration: duration,
		Err:      err,
	}
}

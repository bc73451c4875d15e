package infrastructure

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// BusinessMetrics holds the pipeline-level instruments.
type BusinessMetrics struct {
	StageExecutionsTotal metric.Int64Counter
	StageDuration        metric.Float64Histogram
	RowsProcessed        metric.Int64Counter
	SnapshotWritesTotal  metric.Int64Counter
}

// CreateBusinessMetrics registers the pipeline instruments on the meter.
func CreateBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	stageExecutions, err := meter.Int64Counter("pipeline_stage_executions_total",
		metric.WithDescription("Number of stage executions by stage and status"))
	if err != nil {
		return nil, fmt.Errorf("failed to create stage executions counter: %w", err)
	}

	stageDuration, err := meter.Float64Histogram("pipeline_stage_duration_seconds",
		metric.WithDescription("Stage execution duration in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("failed to create stage duration histogram: %w", err)
	}

	rowsProcessed, err := meter.Int64Counter("pipeline_rows_processed_total",
		metric.WithDescription("Rows produced by each stage"))
	if err != nil {
		return nil, fmt.Errorf("failed to create rows processed counter: %w", err)
	}

	snapshotWrites, err := meter.Int64Counter("pipeline_snapshot_writes_total",
		metric.WithDescription("Snapshot files written"))
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot writes counter: %w", err)
	}

	return &BusinessMetrics{
		StageExecutionsTotal: stageExecutions,
		StageDuration:        stageDuration,
		RowsProcessed:        rowsProcessed,
		SnapshotWritesTotal:  snapshotWrites,
	}, nil
}

// Package pipeline sequences the batch stages: acquire, calculate, format,
// report. Stages run strictly in order and fail fast; each one reads the
// snapshots of the stage before it and writes exactly one artifact set, so a
// failed run never leaves a partially written stage output behind.
package pipeline

import (
	"context"
	"log/slog"
	"os"
	"time"

	"fxreturns/internal/config"
	apperrors "fxreturns/internal/errors"
	"fxreturns/internal/infrastructure"
)

// Environment carries the shared collaborators every stage needs.
type Environment struct {
	Config  *config.Config
	Paths   *config.Paths
	Logger  *slog.Logger
	Metrics *infrastructure.BusinessMetrics
}

// Stage is one batch step of the pipeline.
type Stage interface {
	// ID returns the stable identifier used in logs and metrics.
	ID() string

	// Name returns the human-readable stage name.
	Name() string

	// Validate checks the stage's preconditions without running it,
	// typically that the input snapshots exist.
	Validate(env *Environment) error

	// Run executes the stage.
	Run(ctx context.Context, env *Environment) error
}

// StageStatus is the terminal state of one stage within a run.
type StageStatus string

const (
	StageCompleted StageStatus = "completed"
	StageFailed    StageStatus = "failed"
	StageSkipped   StageStatus = "skipped"
)

// StageResult records the outcome of one stage.
type StageResult struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Status   StageStatus   `json:"status"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// requireSnapshots fails with a missing-input error when any of the given
// snapshot files does not exist.
func requireSnapshots(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return apperrors.NewNotFoundError("snapshot").WithContext("path", path)
			}
			return apperrors.NewStorageError("failed to stat snapshot", err).WithContext("path", path)
		}
	}
	return nil
}

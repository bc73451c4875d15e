package fx

import (
	"context"
	"time"

	"fxreturns/internal/snapshot"
)

// CalculateFromSnapshots is the entry point the orchestration layer calls:
// it loads the spot and interest-rate snapshots, runs the engine, and returns
// the long-form series truncated to dates on or before the cutoff. A missing
// snapshot is fatal and surfaces as a NOT_FOUND application error.
func (e *Engine) CalculateFromSnapshots(ctx context.Context, spotPath, ratePath string, cutoff time.Time) ([]Observation, error) {
	spot, err := snapshot.ReadFrame(spotPath)
	if err != nil {
		return nil, err
	}
	rates, err := snapshot.ReadFrame(ratePath)
	if err != nil {
		return nil, err
	}
	return e.Compute(ctx, spot, rates, cutoff)
}

// Package fx implements the implied-return engine: it aligns spot and
// interest-rate panels, enforces the single quoting convention, and derives a
// daily USD return per currency from a lagged spot ratio times the financing
// factor. The engine is a pure batch transform over in-memory frames; loading
// and persisting snapshots lives in loader.go and persist.go.
package fx

import (
	"context"
	"log/slog"
	"time"

	"fxreturns/internal/timeseries"
)

// Engine computes implied daily returns for a fixed currency universe.
type Engine struct {
	universe Universe
	strict   bool
	logger   *slog.Logger
}

// NewEngine builds an engine over the given universe. In strict mode every
// canonical currency must survive column normalization in both input tables;
// otherwise currencies with incomplete inputs are skipped with a warning.
func NewEngine(universe Universe, strict bool, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		universe: universe,
		strict:   strict,
		logger:   logger,
	}
}

// ComputeWide runs the full transform and returns the wide result: one return
// column per currency, indexed by date, chronologically ordered. The stage
// order is fixed and load-bearing: normalize columns, invert reciprocal
// quotes, inner-join on date, truncate at the cutoff (inclusive), forward
// fill, lag, compute. Reordering the forward fill against the lag diverges
// numerically around source-level gaps.
//
// A zero cutoff disables truncation. Inputs sharing no common dates produce
// an empty frame, not an error.
func (e *Engine) ComputeWide(ctx context.Context, spot, rates *timeseries.Frame, cutoff time.Time) (*timeseries.Frame, error) {
	spot, err := NormalizeSpotColumns(spot, e.universe)
	if err != nil {
		return nil, err
	}
	spot = ApplyQuoting(spot, e.universe)

	rates, err = NormalizeRateColumns(rates, e.universe)
	if err != nil {
		return nil, err
	}

	if e.strict {
		if err := ValidateCanonical(spot, e.universe, "spot"); err != nil {
			return nil, err
		}
		if err := ValidateCanonical(rates, e.universe, "interest rate"); err != nil {
			return nil, err
		}
	}

	spot, rates = timeseries.AlignDates(spot, rates)
	spot = spot.TruncateAfter(cutoff)
	rates = rates.TruncateAfter(cutoff)

	spot = spot.ForwardFill()
	rates = rates.ForwardFill()
	lagged := spot.Shift(1)

	currencies, skipped := e.computable(spot, rates)
	if len(skipped) > 0 {
		e.logger.WarnContext(ctx, "skipping currencies with incomplete inputs",
			slog.Any("currencies", skipped))
	}

	n := spot.Len()
	dates := spot.Dates()
	data := make(map[string][]float64, len(currencies))
	for _, code := range currencies {
		col := make([]float64, n)
		if code == e.universe.Reference {
			// The reference currency has no exchange-rate exposure
			// against itself; its return is the rate factor.
			for i := 0; i < n; i++ {
				col[i] = rates.Value(code, i)
			}
		} else {
			for i := 0; i < n; i++ {
				col[i] = lagged.Value(code, i) / spot.Value(code, i) * rates.Value(code, i)
			}
		}
		data[code] = col
	}

	e.logger.InfoContext(ctx, "computed implied returns",
		slog.Int("panel_rows", n),
		slog.Int("currencies", len(currencies)))

	return timeseries.New(dates, currencies, data)
}

// Compute runs ComputeWide and reshapes the result to long form.
func (e *Engine) Compute(ctx context.Context, spot, rates *timeseries.Frame, cutoff time.Time) ([]Observation, error) {
	wide, err := e.ComputeWide(ctx, spot, rates, cutoff)
	if err != nil {
		return nil, err
	}
	return Reshape(wide), nil
}

// computable selects the universe currencies whose inputs survived the merge.
// Non-reference currencies need both a spot and a rate column; the reference
// needs only a rate column. In strict mode validation has already guaranteed
// the full set.
func (e *Engine) computable(spot, rates *timeseries.Frame) (kept, skipped []string) {
	for _, code := range e.universe.Currencies {
		ok := rates.HasColumn(code)
		if code != e.universe.Reference {
			ok = ok && spot.HasColumn(code)
		}
		if ok {
			kept = append(kept, code)
		} else {
			skipped = append(skipped, code)
		}
	}
	return kept, skipped
}

// Reshape converts a wide return frame to long form, one record per
// (currency, date) pair, grouped by currency in column order. Undefined
// values are carried through; dropping them is the formatter's job.
func Reshape(wide *timeseries.Frame) []Observation {
	out := make([]Observation, 0, wide.Len()*len(wide.Columns()))
	for _, code := range wide.Columns() {
		for i := 0; i < wide.Len(); i++ {
			out = append(out, Observation{
				Currency: code,
				Date:     wide.Date(i),
				Return:   wide.Value(code, i),
			})
		}
	}
	return out
}

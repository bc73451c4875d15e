package fx

import (
	"fxreturns/internal/timeseries"
)

// ApplyQuoting flips the spot columns quoted as USD-per-foreign onto the
// common foreign-per-USD convention by taking the multiplicative inverse.
// Applied exactly once, after column normalization and before the panel
// merge; absence of a reciprocal column is not an error.
func ApplyQuoting(f *timeseries.Frame, u Universe) *timeseries.Frame {
	out := f
	for _, code := range u.Reciprocal {
		out = out.Apply(code, func(v float64) float64 { return 1 / v })
	}
	return out
}

package fx

import (
	"time"

	"fxreturns/internal/timeseries"
)

// Observation is one long-form return record: the implied daily USD return of
// the given currency on the given date. Return is the missing sentinel when
// the value is undefined, which happens on the first surviving panel row of
// every non-reference currency.
type Observation struct {
	Currency string
	Date     time.Time
	Return   float64
}

// Defined reports whether the observation carries a computed value.
func (o Observation) Defined() bool {
	return !timeseries.IsMissing(o.Return)
}

// Package domain holds the wire types shared between the pipeline stages and
// the read-only consumers (report generator, web handlers). The standardized
// dataset schema defined here is a frozen contract: downstream forecasting
// tooling depends on the literal column names and their order.
package domain

import (
	"encoding/json"
	"math"
	"time"
)

// Standardized dataset column names, in positional order.
const (
	ColumnUniqueID = "unique_id"
	ColumnDS       = "ds"
	ColumnY        = "y"
)

// DateLayout is the canonical date format used in every snapshot file.
const DateLayout = "2006-01-02"

// ReturnPoint is one row of the standardized returns dataset: the implied
// daily USD return for a single currency on a single date. Y is always a
// defined value; rows with an undefined return never reach this type.
type ReturnPoint struct {
	UniqueID string    `json:"unique_id"`
	DS       time.Time `json:"ds"`
	Y        float64   `json:"y"`
}

// Before reports whether p sorts before q under the dataset ordering,
// ascending by (unique_id, ds).
func (p ReturnPoint) Before(q ReturnPoint) bool {
	if p.UniqueID != q.UniqueID {
		return p.UniqueID < q.UniqueID
	}
	return p.DS.Before(q.DS)
}

// CurrencySummary aggregates the return series of one currency for the
// summary report.
type CurrencySummary struct {
	Currency   string  `json:"currency"`
	Count      int     `json:"count"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Skewness   float64 `json:"skewness"`
	Kurtosis   float64 `json:"kurtosis"`
	Cumulative float64 `json:"cumulative"`

	FirstDate time.Time `json:"first_date"`
	LastDate  time.Time `json:"last_date"`
}

// MarshalJSON emits undefined moments (NaN on short series) as null, which
// encoding/json otherwise rejects.
func (s CurrencySummary) MarshalJSON() ([]byte, error) {
	type shadow struct {
		Currency   string    `json:"currency"`
		Count      int       `json:"count"`
		Mean       *float64  `json:"mean"`
		StdDev     *float64  `json:"std_dev"`
		Min        *float64  `json:"min"`
		Max        *float64  `json:"max"`
		Skewness   *float64  `json:"skewness"`
		Kurtosis   *float64  `json:"kurtosis"`
		Cumulative *float64  `json:"cumulative"`
		FirstDate  time.Time `json:"first_date"`
		LastDate   time.Time `json:"last_date"`
	}
	defined := func(v float64) *float64 {
		if math.IsNaN(v) {
			return nil
		}
		return &v
	}
	return json.Marshal(shadow{
		Currency:   s.Currency,
		Count:      s.Count,
		Mean:       defined(s.Mean),
		StdDev:     defined(s.StdDev),
		Min:        defined(s.Min),
		Max:        defined(s.Max),
		Skewness:   defined(s.Skewness),
		Kurtosis:   defined(s.Kurtosis),
		Cumulative: defined(s.Cumulative),
		FirstDate:  s.FirstDate,
		LastDate:   s.LastDate,
	})
}

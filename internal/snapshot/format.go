package snapshot

import (
	"strconv"
	"strings"
	"time"

	"fxreturns/internal/timeseries"
)

// DateLayout is the date format used in every snapshot file.
const DateLayout = "2006-01-02"

// FormatValue renders a float for CSV output. Missing values render as the
// empty string so the gap survives a round trip.
func FormatValue(v float64) string {
	if timeseries.IsMissing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ParseValue parses a CSV cell into a float, mapping empty cells to the
// missing sentinel.
func ParseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return timeseries.Missing(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// FormatDate renders a snapshot date cell.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a snapshot date cell.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

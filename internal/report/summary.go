// Package report renders the read-only artifacts derived from the
// standardized dataset: per-currency summary statistics as CSV and HTML, and
// an interactive cumulative-return chart.
package report

import (
	"math"
	"sort"
	"strconv"

	"fxreturns/internal/snapshot"
	"fxreturns/pkg/contracts/domain"
)

// Summarize aggregates the standardized dataset into one summary per
// currency, sorted by currency code. Skewness and kurtosis are
// sample-adjusted and need at least 3 and 4 observations respectively;
// below that they are undefined.
func Summarize(points []domain.ReturnPoint) []domain.CurrencySummary {
	grouped := make(map[string][]domain.ReturnPoint)
	for _, p := range points {
		grouped[p.UniqueID] = append(grouped[p.UniqueID], p)
	}

	currencies := make([]string, 0, len(grouped))
	for code := range grouped {
		currencies = append(currencies, code)
	}
	sort.Strings(currencies)

	summaries := make([]domain.CurrencySummary, 0, len(currencies))
	for _, code := range currencies {
		series := grouped[code]
		sort.Slice(series, func(i, j int) bool {
			return series[i].DS.Before(series[j].DS)
		})

		values := make([]float64, len(series))
		cumulative := 1.0
		for i, p := range series {
			values[i] = p.Y
			cumulative *= p.Y
		}

		s := domain.CurrencySummary{
			Currency:   code,
			Count:      len(values),
			Mean:       mean(values),
			StdDev:     stdDev(values),
			Min:        minOf(values),
			Max:        maxOf(values),
			Skewness:   skewness(values),
			Kurtosis:   kurtosis(values),
			Cumulative: cumulative,
			FirstDate:  series[0].DS,
			LastDate:   series[len(series)-1].DS,
		}
		summaries = append(summaries, s)
	}
	return summaries
}

var summaryHeader = []string{
	"currency", "count", "mean", "std_dev", "min", "max",
	"skewness", "kurtosis", "cumulative", "first_date", "last_date",
}

// WriteSummaryCSV persists the summaries as a CSV artifact.
func WriteSummaryCSV(path string, summaries []domain.CurrencySummary) error {
	records := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		records = append(records, []string{
			s.Currency,
			strconv.Itoa(s.Count),
			snapshot.FormatValue(s.Mean),
			snapshot.FormatValue(s.StdDev),
			snapshot.FormatValue(s.Min),
			snapshot.FormatValue(s.Max),
			snapshot.FormatValue(s.Skewness),
			snapshot.FormatValue(s.Kurtosis),
			snapshot.FormatValue(s.Cumulative),
			snapshot.FormatDate(s.FirstDate),
			snapshot.FormatDate(s.LastDate),
		})
	}
	return snapshot.WriteCSV(path, summaryHeader, records)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the sample standard deviation (n-1 denominator).
func stdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return math.NaN()
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(n-1))
}

func minOf(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	out := values[0]
	for _, v := range values[1:] {
		if v < out {
			out = v
		}
	}
	return out
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	out := values[0]
	for _, v := range values[1:] {
		if v > out {
			out = v
		}
	}
	return out
}

func centralMoment(values []float64, order int) float64 {
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		sum += math.Pow(v-m, float64(order))
	}
	return sum / float64(len(values))
}

// skewness is the adjusted Fisher-Pearson sample skewness.
func skewness(values []float64) float64 {
	n := float64(len(values))
	if n < 3 {
		return math.NaN()
	}
	m2 := centralMoment(values, 2)
	if m2 == 0 {
		return math.NaN()
	}
	g1 := centralMoment(values, 3) / math.Pow(m2, 1.5)
	return g1 * math.Sqrt(n*(n-1)) / (n - 2)
}

// kurtosis is the sample-adjusted excess kurtosis.
func kurtosis(values []float64) float64 {
	n := float64(len(values))
	if n < 4 {
		return math.NaN()
	}
	m2 := centralMoment(values, 2)
	if m2 == 0 {
		return math.NaN()
	}
	g2 := centralMoment(values, 4)/(m2*m2) - 3
	return ((n+1)*g2 + 6) * (n - 1) / ((n - 2) * (n - 3))
}

// Package timeseries provides a small date-indexed wide table used by the
// return engine. A Frame holds one float64 column per series, aligned to a
// single sorted date index; missing values are NaN. All transforms return a
// new Frame, the receiver is never mutated.
package timeseries

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Missing returns the sentinel used for absent values.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether v is the missing-value sentinel.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Frame is a date-indexed wide table. Dates are unique and sorted ascending;
// every column slice has exactly len(dates) entries.
type Frame struct {
	dates   []time.Time
	columns []string
	data    map[string][]float64
}

// New builds a Frame from a date index and column data. Column slices must
// match the date index length. Duplicate dates are a precondition violation
// and fail immediately; unsorted dates are sorted defensively, carrying every
// column along.
func New(dates []time.Time, columns []string, data map[string][]float64) (*Frame, error) {
	for _, name := range columns {
		col, ok := data[name]
		if !ok {
			return nil, fmt.Errorf("column %q has no data", name)
		}
		if len(col) != len(dates) {
			return nil, fmt.Errorf("column %q has %d values for %d dates", name, len(col), len(dates))
		}
	}

	seen := make(map[int64]bool, len(dates))
	for _, d := range dates {
		key := d.Unix()
		if seen[key] {
			return nil, fmt.Errorf("duplicate date %s in index", d.Format("2006-01-02"))
		}
		seen[key] = true
	}

	// Sort dates and permute columns to match.
	order := make([]int, len(dates))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return dates[order[i]].Before(dates[order[j]])
	})

	f := &Frame{
		dates:   make([]time.Time, len(dates)),
		columns: append([]string(nil), columns...),
		data:    make(map[string][]float64, len(columns)),
	}
	for i, idx := range order {
		f.dates[i] = dates[idx]
	}
	for _, name := range columns {
		src := data[name]
		dst := make([]float64, len(dates))
		for i, idx := range order {
			dst[i] = src[idx]
		}
		f.data[name] = dst
	}
	return f, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.dates)
}

// Dates returns a copy of the date index.
func (f *Frame) Dates() []time.Time {
	return append([]time.Time(nil), f.dates...)
}

// Date returns the date at row i.
func (f *Frame) Date(i int) time.Time {
	return f.dates[i]
}

// Columns returns a copy of the column names in order.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// HasColumn reports whether the named column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.data[name]
	return ok
}

// Column returns a copy of the named column, or false if absent.
func (f *Frame) Column(name string) ([]float64, bool) {
	col, ok := f.data[name]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), col...), true
}

// Value returns the value of the named column at row i, or the missing
// sentinel if the column is absent.
func (f *Frame) Value(name string, i int) float64 {
	col, ok := f.data[name]
	if !ok {
		return Missing()
	}
	return col[i]
}

// Rename returns a Frame with column names rewritten by fn. Two columns
// mapping to the same name is an error.
func (f *Frame) Rename(fn func(string) string) (*Frame, error) {
	out := f.emptyLike()
	for _, name := range f.columns {
		renamed := fn(name)
		if _, exists := out.data[renamed]; exists {
			return nil, fmt.Errorf("rename collision on column %q", renamed)
		}
		out.columns = append(out.columns, renamed)
		out.data[renamed] = append([]float64(nil), f.data[name]...)
	}
	return out, nil
}

// Apply returns a Frame with fn applied to every value of the named column.
// Absence of the column is not an error; the Frame is returned unchanged.
func (f *Frame) Apply(name string, fn func(float64) float64) *Frame {
	out := f.copy()
	col, ok := out.data[name]
	if !ok {
		return out
	}
	for i, v := range col {
		col[i] = fn(v)
	}
	return out
}

// TruncateAfter returns the rows with dates on or before cutoff. A zero
// cutoff disables truncation.
func (f *Frame) TruncateAfter(cutoff time.Time) *Frame {
	if cutoff.IsZero() {
		return f.copy()
	}
	n := sort.Search(len(f.dates), func(i int) bool {
		return f.dates[i].After(cutoff)
	})
	return f.slice(0, n)
}

// ForwardFill returns a Frame where each missing value is replaced by the
// last defined value of the same column. Gaps propagate forward only; leading
// missing values stay missing.
func (f *Frame) ForwardFill() *Frame {
	out := f.copy()
	for _, name := range out.columns {
		col := out.data[name]
		last := Missing()
		for i, v := range col {
			if IsMissing(v) {
				col[i] = last
			} else {
				last = v
			}
		}
	}
	return out
}

// Shift returns a Frame where row i holds the value from row i-periods of the
// same column. Rows shifted in from beyond the index are missing.
func (f *Frame) Shift(periods int) *Frame {
	out := f.emptyLike()
	out.columns = append([]string(nil), f.columns...)
	for _, name := range f.columns {
		src := f.data[name]
		dst := make([]float64, len(src))
		for i := range dst {
			j := i - periods
			if j < 0 || j >= len(src) {
				dst[i] = Missing()
			} else {
				dst[i] = src[j]
			}
		}
		out.data[name] = dst
	}
	return out
}

// Restrict returns the rows whose dates appear in the given set, preserving
// chronological order.
func (f *Frame) Restrict(dates []time.Time) *Frame {
	keep := make(map[int64]bool, len(dates))
	for _, d := range dates {
		keep[d.Unix()] = true
	}
	var idx []int
	for i, d := range f.dates {
		if keep[d.Unix()] {
			idx = append(idx, i)
		}
	}
	return f.take(idx)
}

// AlignDates restricts both frames to their common dates, the inner-join date
// index. Dates present in only one frame are dropped from both results.
func AlignDates(a, b *Frame) (*Frame, *Frame) {
	inB := make(map[int64]bool, b.Len())
	for _, d := range b.dates {
		inB[d.Unix()] = true
	}
	var common []time.Time
	for _, d := range a.dates {
		if inB[d.Unix()] {
			common = append(common, d)
		}
	}
	return a.Restrict(common), b.Restrict(common)
}

func (f *Frame) emptyLike() *Frame {
	return &Frame{
		dates:   append([]time.Time(nil), f.dates...),
		columns: make([]string, 0, len(f.columns)),
		data:    make(map[string][]float64, len(f.columns)),
	}
}

func (f *Frame) copy() *Frame {
	out := f.emptyLike()
	out.columns = append(out.columns, f.columns...)
	for _, name := range f.columns {
		out.data[name] = append([]float64(nil), f.data[name]...)
	}
	return out
}

func (f *Frame) slice(lo, hi int) *Frame {
	idx := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		idx = append(idx, i)
	}
	return f.take(idx)
}

func (f *Frame) take(idx []int) *Frame {
	out := &Frame{
		dates:   make([]time.Time, len(idx)),
		columns: append([]string(nil), f.columns...),
		data:    make(map[string][]float64, len(f.columns)),
	}
	for i, j := range idx {
		out.dates[i] = f.dates[j]
	}
	for _, name := range f.columns {
		src := f.data[name]
		dst := make([]float64, len(idx))
		for i, j := range idx {
			dst[i] = src[j]
		}
		out.data[name] = dst
	}
	return out
}

package provider

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "fxreturns/internal/errors"
	"fxreturns/internal/snapshot"
	"fxreturns/internal/timeseries"
)

// ImportWorkbook reads a manually exported terminal workbook into a raw
// frame. This is the offline fallback for desks without API access: the
// terminal's Excel export carries the same ticker column names as the
// history API, so the result feeds the same snapshot files.
//
// Layout expectations: the first sheet with at least a header row and one
// data row is used; the header's first cell is the date column, the rest are
// tickers. Empty cells become missing values.
func ImportWorkbook(path string, logger *slog.Logger) (*timeseries.Frame, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewAcquisitionError("failed to open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	var rows [][]string
	var sheetName string
	for _, name := range f.GetSheetList() {
		candidate, err := f.GetRows(name)
		if err != nil {
			continue
		}
		if len(candidate) >= 2 && len(candidate[0]) >= 2 {
			rows = candidate
			sheetName = name
			break
		}
	}
	if sheetName == "" {
		return nil, apperrors.NewParsingError("workbook has no sheet with tabular data", nil).WithContext("path", path)
	}

	logger.Debug("importing workbook sheet",
		slog.String("path", path),
		slog.String("sheet", sheetName),
		slog.Int("rows", len(rows)))

	header := rows[0]
	columns := make([]string, 0, len(header)-1)
	for _, name := range header[1:] {
		columns = append(columns, strings.TrimSpace(name))
	}

	dates := make([]time.Time, 0, len(rows)-1)
	data := make(map[string][]float64, len(columns))
	for _, name := range columns {
		data[name] = make([]float64, 0, len(rows)-1)
	}

	for i, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		date, err := snapshot.ParseDate(row[0])
		if err != nil {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("workbook row %d has a bad date", i+2), err).WithContext("path", path)
		}
		dates = append(dates, date)

		// GetRows trims trailing empty cells, so short rows pad out as
		// missing values.
		for j, name := range columns {
			cell := ""
			if j+1 < len(row) {
				cell = row[j+1]
			}
			v, err := snapshot.ParseValue(cell)
			if err != nil {
				return nil, apperrors.NewParsingError(
					fmt.Sprintf("workbook row %d column %s has a bad value", i+2, name), err).WithContext("path", path)
			}
			data[name] = append(data[name], v)
		}
	}

	frame, err := timeseries.New(dates, columns, data)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error()).WithContext("path", path)
	}
	return frame, nil
}

package snapshot

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	apperrors "fxreturns/internal/errors"
	"fxreturns/internal/timeseries"
)

// ReadCSV reads all rows of a snapshot file. A missing file is a fatal
// missing-input failure surfaced as a NOT_FOUND application error.
func ReadCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError("snapshot").WithContext("path", path)
		}
		return nil, apperrors.NewStorageError("failed to open snapshot", err).WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read snapshot", err).WithContext("path", path)
	}
	return records, nil
}

// ReadFrame loads a wide snapshot written by WriteFrame: a header row whose
// first cell is the date column, one row per date.
func ReadFrame(path string) (*timeseries.Frame, error) {
	records, err := ReadCSV(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.NewParsingError("snapshot has no header row", nil).WithContext("path", path)
	}

	header := records[0]
	if len(header) < 1 {
		return nil, apperrors.NewParsingError("snapshot header is empty", nil).WithContext("path", path)
	}
	columns := header[1:]

	dates := make([]time.Time, 0, len(records)-1)
	data := make(map[string][]float64, len(columns))
	for _, name := range columns {
		data[name] = make([]float64, 0, len(records)-1)
	}

	for i, record := range records[1:] {
		if len(record) != len(header) {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("row %d has %d cells, header has %d", i+2, len(record), len(header)), nil,
			).WithContext("path", path)
		}
		date, err := ParseDate(record[0])
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("row %d has a bad date", i+2), err).WithContext("path", path)
		}
		dates = append(dates, date)
		for j, name := range columns {
			v, err := ParseValue(record[j+1])
			if err != nil {
				return nil, apperrors.NewParsingError(
					fmt.Sprintf("row %d column %s has a bad value", i+2, name), err,
				).WithContext("path", path)
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

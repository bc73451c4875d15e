package fx

import (
	"fmt"

	apperrors "fxreturns/internal/errors"
	"fxreturns/internal/snapshot"
)

// Column order of the intermediate returns snapshot. The formatter renames
// these positionally, so the order is part of the contract.
var returnsHeader = []string{"currency", "date", "returns"}

// SaveObservations persists the long-form return series as the intermediate
// returns snapshot. Undefined returns are written as empty cells.
func SaveObservations(path string, observations []Observation) error {
	records := make([][]string, 0, len(observations))
	for _, o := range observations {
		records = append(records, []string{
			o.Currency,
			snapshot.FormatDate(o.Date),
			snapshot.FormatValue(o.Return),
		})
	}
	return snapshot.WriteCSV(path, returnsHeader, records)
}

// LoadObservations reads a snapshot written by SaveObservations.
func LoadObservations(path string) ([]Observation, error) {
	records, err := snapshot.ReadCSV(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.NewParsingError("returns snapshot has no header row", nil).WithContext("path", path)
	}
	header := records[0]
	if len(header) != len(returnsHeader) ||
		header[0] != returnsHeader[0] || header[1] != returnsHeader[1] || header[2] != returnsHeader[2] {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("returns snapshot has unexpected header %v", header), nil,
		).WithContext("path", path)
	}

	observations := make([]Observation, 0, len(records)-1)
	for i, record := range records[1:] {
		date, err := snapshot.ParseDate(record[1])
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("row %d has a bad date", i+2), err).WithContext("path", path)
		}
		value, err := snapshot.ParseValue(record[2])
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("row %d has a bad return", i+2), err).WithContext("path", path)
		}
		observations = append(observations, Observation{
			Currency: record[0],
			Date:     date,
			Return:   value,
		})
	}
	return observations, nil
}

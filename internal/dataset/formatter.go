// Package dataset produces the final standardized artifact consumed by every
// downstream reporting collaborator. The formatter is deliberately thin: it
// renames the long-form return fields onto the frozen public schema, drops
// rows with undefined values, and sorts.
package dataset

import (
	"fmt"
	"sort"

	apperrors "fxreturns/internal/errors"
	"fxreturns/internal/fx"
	"fxreturns/internal/snapshot"
	"fxreturns/pkg/contracts/domain"
)

// Standardize converts the engine's long-form observations to the public
// schema. Rows with an undefined return are dropped, which removes every
// currency's first-row value among others. The result is sorted ascending by
// (unique_id, ds).
func Standardize(observations []fx.Observation) []domain.ReturnPoint {
	points := make([]domain.ReturnPoint, 0, len(observations))
	for _, o := range observations {
		if !o.Defined() {
			continue
		}
		points = append(points, domain.ReturnPoint{
			UniqueID: o.Currency,
			DS:       o.Date,
			Y:        o.Return,
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Before(points[j])
	})
	return points
}

// SaveStandardized persists the standardized dataset snapshot. Column names
// and their order are a frozen contract.
func SaveStandardized(path string, points []domain.ReturnPoint) error {
	headers := []string{domain.ColumnUniqueID, domain.ColumnDS, domain.ColumnY}
	records := make([][]string, 0, len(points))
	for _, p := range points {
		records = append(records, []string{
			p.UniqueID,
			snapshot.FormatDate(p.DS),
			snapshot.FormatValue(p.Y),
		})
	}
	return snapshot.WriteCSV(path, headers, records)
}

// LoadStandardized reads a snapshot written by SaveStandardized. Every row
// must carry all three fields; the dataset contract allows no gaps.
func LoadStandardized(path string) ([]domain.ReturnPoint, error) {
	records, err := snapshot.ReadCSV(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.NewParsingError("standardized snapshot has no header row", nil).WithContext("path", path)
	}
	header := records[0]
	if len(header) != 3 ||
		header[0] != domain.ColumnUniqueID || header[1] != domain.ColumnDS || header[2] != domain.ColumnY {
		return nil, apperrors.NewParsingError(
			fmt.Sprintf("standardized snapshot has unexpected header %v", header), nil,
		).WithContext("path", path)
	}

	points := make([]domain.ReturnPoint, 0, len(records)-1)
	for i, record := range records[1:] {
		if record[0] == "" {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("row %d has an empty %s", i+2, domain.ColumnUniqueID),
			).WithContext("path", path)
		}
		ds, err := snapshot.ParseDate(record[1])
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("row %d has a bad %s", i+2, domain.ColumnDS), err).WithContext("path", path)
		}
		if record[2] == "" {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("row %d has an empty %s", i+2, domain.ColumnY),
			).WithContext("path", path)
		}
		y, err := snapshot.ParseValue(record[2])
		if err != nil {
			return nil, apperrors.NewParsingError(fmt.Sprintf("row %d has a bad %s", i+2, domain.ColumnY), err).WithContext("path", path)
		}
		points = append(points, domain.ReturnPoint{UniqueID: record[0], DS: ds, Y: y})
	}
	return points, nil
}

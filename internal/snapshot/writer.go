package snapshot

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fxreturns/internal/timeseries"
)

// WriteCSV writes headers and records to path. The write is all-or-nothing:
// data lands in a temporary file first and is renamed over the target only
// after a successful flush.
func WriteCSV(path string, headers []string, records [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	slog.Debug("writing snapshot",
		slog.String("path", path),
		slog.Int("record_count", len(records)))

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	writer := csv.NewWriter(tmp)
	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			cleanup()
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range records {
		if err := writer.Write(record); err != nil {
			cleanup()
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		cleanup()
		return fmt.Errorf("failed to flush records: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move snapshot into place: %w", err)
	}
	return nil
}

// WriteFrame persists a wide frame as a snapshot with a leading date column.
func WriteFrame(path string, f *timeseries.Frame) error {
	columns := f.Columns()
	headers := append([]string{"date"}, columns...)

	records := make([][]string, 0, f.Len())
	for i := 0; i < f.Len(); i++ {
		row := make([]string, 0, len(headers))
		row = append(row, FormatDate(f.Date(i)))
		for _, name := range columns {
			row = append(row, FormatValue(f.Value(name, i)))
		}
		records = append(records, row)
	}
	return WriteCSV(path, headers, records)
}

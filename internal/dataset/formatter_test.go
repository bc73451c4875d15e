package dataset

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fxreturns/internal/fx"
	"fxreturns/internal/snapshot"
	"fxreturns/internal/timeseries"
	"fxreturns/pkg/contracts/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStandardize_DropsUndefinedAndSorts(t *testing.T) {
	observations := []fx.Observation{
		{Currency: "USD", Date: day("2024-01-02"), Return: 1.0001},
		{Currency: "EUR", Date: day("2024-01-01"), Return: timeseries.Missing()},
		{Currency: "EUR", Date: day("2024-01-03"), Return: 1.0112},
		{Currency: "EUR", Date: day("2024-01-02"), Return: 1.0111},
		{Currency: "USD", Date: day("2024-01-01"), Return: 1.0001},
	}

	points := Standardize(observations)

	require.Len(t, points, 4, "the undefined first-row return is dropped")
	assert.Equal(t, domain.ReturnPoint{UniqueID: "EUR", DS: day("2024-01-02"), Y: 1.0111}, points[0])
	assert.Equal(t, domain.ReturnPoint{UniqueID: "EUR", DS: day("2024-01-03"), Y: 1.0112}, points[1])
	assert.Equal(t, domain.ReturnPoint{UniqueID: "USD", DS: day("2024-01-01"), Y: 1.0001}, points[2])
	assert.Equal(t, domain.ReturnPoint{UniqueID: "USD", DS: day("2024-01-02"), Y: 1.0001}, points[3])
}

func TestStandardize_EmptyInput(t *testing.T) {
	assert.Empty(t, Standardize(nil))
}

func TestSaveLoadStandardized_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ftsfr_fx_returns.csv")
	in := []domain.ReturnPoint{
		{UniqueID: "EUR", DS: day("2024-01-02"), Y: 1.0111},
		{UniqueID: "USD", DS: day("2024-01-01"), Y: 1.0001},
	}

	require.NoError(t, SaveStandardized(path, in))

	out, err := LoadStandardized(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadStandardized_RejectsWrongHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, snapshot.WriteCSV(path,
		[]string{"currency", "date", "returns"},
		[][]string{{"EUR", "2024-01-01", "1.01"}}))

	_, err := LoadStandardized(path)
	require.Error(t, err)
}

func TestLoadStandardized_RejectsMissingY(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gap.csv")
	require.NoError(t, snapshot.WriteCSV(path,
		[]string{domain.ColumnUniqueID, domain.ColumnDS, domain.ColumnY},
		[][]string{{"EUR", "2024-01-01", ""}}))

	_, err := LoadStandardized(path)
	require.Error(t, err, "the standardized dataset allows no gaps")
}

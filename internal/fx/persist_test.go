package fx

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fxreturns/internal/snapshot"
	"fxreturns/internal/timeseries"
)

func TestSaveLoadObservations_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fx_returns.csv")
	in := []Observation{
		{Currency: "EUR", Date: day("2024-01-01"), Return: timeseries.Missing()},
		{Currency: "EUR", Date: day("2024-01-02"), Return: 1.0111},
		{Currency: "USD", Date: day("2024-01-01"), Return: 1.0001},
	}

	require.NoError(t, SaveObservations(path, in))

	out, err := LoadObservations(path)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, "EUR", out[0].Currency)
	assert.False(t, out[0].Defined(), "undefined returns survive the round trip")
	assert.Equal(t, 1.0111, out[1].Return)
	assert.Equal(t, "USD", out[2].Currency)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), out[2].Date)
}

func TestLoadObservations_RejectsWrongHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, snapshot.WriteCSV(path,
		[]string{"unique_id", "ds", "y"},
		[][]string{{"EUR", "2024-01-01", "1.01"}}))

	_, err := LoadObservations(path)
	require.Error(t, err)
}

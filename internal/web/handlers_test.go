package web

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fxreturns/internal/config"
	"fxreturns/internal/dataset"
	"fxreturns/pkg/contracts/domain"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func seedServer(t *testing.T) (*httptest.Server, *config.Paths) {
	t.Helper()
	paths := config.NewPaths(t.TempDir(), t.TempDir())
	points := []domain.ReturnPoint{
		{UniqueID: "EUR", DS: day("2024-01-02"), Y: 1.0111},
		{UniqueID: "EUR", DS: day("2024-01-03"), Y: 0.9987},
		{UniqueID: "USD", DS: day("2024-01-01"), Y: 1.0001},
		{UniqueID: "USD", DS: day("2024-01-02"), Y: 1.0001},
	}
	require.NoError(t, dataset.SaveStandardized(paths.StandardizedSnapshot(), points))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httptest.NewServer(NewRouter(paths, logger, nil))
	t.Cleanup(server.Close)
	return server, paths
}

func getJSON(t *testing.T, url string, out interface{}) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealth(t *testing.T) {
	server, _ := seedServer(t)
	var body map[string]string
	resp := getJSON(t, server.URL+"/healthz", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestReturns_All(t *testing.T) {
	server, _ := seedServer(t)
	var points []domain.ReturnPoint
	resp := getJSON(t, server.URL+"/api/returns", &points)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, points, 4)
}

func TestReturns_CurrencyFilter(t *testing.T) {
	server, _ := seedServer(t)
	var points []domain.ReturnPoint
	resp := getJSON(t, server.URL+"/api/returns?currency=eur", &points)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, points, 2, "filter is case-insensitive")
	assert.Equal(t, "EUR", points[0].UniqueID)
}

func TestReturns_UnknownCurrencyIs404(t *testing.T) {
	server, _ := seedServer(t)
	resp := getJSON(t, server.URL+"/api/returns?currency=XXX", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReturns_CSV(t *testing.T) {
	server, _ := seedServer(t)
	resp, err := http.Get(server.URL + "/api/returns?currency=USD&format=csv")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "unique_id,ds,y")
	assert.Contains(t, string(body), "USD,2024-01-01,1.0001")
}

func TestReturns_MissingArtifactIs404(t *testing.T) {
	paths := config.NewPaths(t.TempDir(), t.TempDir())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httptest.NewServer(NewRouter(paths, logger, nil))
	t.Cleanup(server.Close)

	resp := getJSON(t, server.URL+"/api/returns", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSummary(t *testing.T) {
	server, _ := seedServer(t)
	var summaries []domain.CurrencySummary
	resp := getJSON(t, server.URL+"/api/summary", &summaries)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, summaries, 2)
	assert.Equal(t, "EUR", summaries[0].Currency)
	assert.Equal(t, 2, summaries[0].Count)
}

func TestReportsStaticFiles(t *testing.T) {
	server, paths := seedServer(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(paths.OutputDir, "fx_cumulative_returns.html"),
		[]byte("<html>chart</html>"), 0644))

	resp, err := http.Get(server.URL + "/reports/fx_cumulative_returns.html")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

package pipeline

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fxreturns/internal/config"
	"fxreturns/internal/dataset"
	"fxreturns/internal/fx"
	"fxreturns/internal/snapshot"
	"fxreturns/internal/timeseries"
)

type fakeStage struct {
	id          string
	validateErr error
	runErr      error
	ran         *[]string
}

func (s *fakeStage) ID() string   { return s.id }
func (s *fakeStage) Name() string { return s.id }

func (s *fakeStage) Validate(env *Environment) error {
	return s.validateErr
}

func (s *fakeStage) Run(ctx context.Context, env *Environment) error {
	*s.ran = append(*s.ran, s.id)
	return s.runErr
}

func testEnv(t *testing.T) *Environment {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()
	cfg.Paths.OutputDir = t.TempDir()
	cfg.Provider.SkipPull = true
	return &Environment{
		Config: cfg,
		Paths:  cfg.ResolvePaths(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestRunner_SequentialOrder(t *testing.T) {
	var ran []string
	stages := []Stage{
		&fakeStage{id: "first", ran: &ran},
		&fakeStage{id: "second", ran: &ran},
		&fakeStage{id: "third", ran: &ran},
	}

	runner := NewRunner(testEnv(t), stages, nil)
	results, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second", "third"}, ran)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, StageCompleted, r.Status)
	}
}

func TestRunner_FailFast(t *testing.T) {
	var ran []string
	boom := stderrors.New("boom")
	stages := []Stage{
		&fakeStage{id: "first", ran: &ran},
		&fakeStage{id: "second", ran: &ran, runErr: boom},
		&fakeStage{id: "third", ran: &ran},
	}

	runner := NewRunner(testEnv(t), stages, nil)
	results, err := runner.Run(context.Background())
	require.ErrorIs(t, err, boom)

	assert.Equal(t, []string{"first", "second"}, ran, "third stage never runs")
	require.Len(t, results, 3)
	assert.Equal(t, StageCompleted, results[0].Status)
	assert.Equal(t, StageFailed, results[1].Status)
	assert.Equal(t, StageSkipped, results[2].Status)
}

func TestRunner_ValidateFailureSkipsRun(t *testing.T) {
	var ran []string
	stages := []Stage{
		&fakeStage{id: "first", ran: &ran, validateErr: stderrors.New("missing input")},
	}

	runner := NewRunner(testEnv(t), stages, nil)
	results, err := runner.Run(context.Background())
	require.Error(t, err)
	assert.Empty(t, ran)
	assert.Equal(t, StageFailed, results[0].Status)
}

// seedRawSnapshots writes provider-shaped spot and rate snapshots covering
// the full default universe.
func seedRawSnapshots(t *testing.T, env *Environment, universe fx.Universe, dates []string) {
	t.Helper()
	ds := make([]time.Time, len(dates))
	for i, s := range dates {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		ds[i] = d
	}

	spotCols := make([]string, 0, len(universe.Currencies))
	spotData := make(map[string][]float64)
	for k, code := range universe.Currencies {
		name := code + " Curncy_PX_LAST"
		col := make([]float64, len(ds))
		for i := range col {
			col[i] = 1.0 + float64(k)*0.1 + float64(i)*0.01
		}
		spotCols = append(spotCols, name)
		spotData[name] = col
	}
	spot, err := timeseries.New(ds, spotCols, spotData)
	require.NoError(t, err)
	require.NoError(t, snapshot.WriteFrame(env.Paths.SpotSnapshot(), spot))

	rateCols := make([]string, 0, len(universe.RateTickers))
	rateData := make(map[string][]float64)
	for providerCode := range universe.RateTickers {
		name := providerCode + " Curncy_PX_LAST"
		col := make([]float64, len(ds))
		for i := range col {
			col[i] = 1.0001
		}
		rateCols = append(rateCols, name)
		rateData[name] = col
	}
	rates, err := timeseries.New(ds, rateCols, rateData)
	require.NoError(t, err)
	require.NoError(t, snapshot.WriteFrame(env.Paths.RateSnapshot(), rates))
}

func TestPipeline_EndToEnd(t *testing.T) {
	env := testEnv(t)
	universe := fx.DefaultUniverse()
	seedRawSnapshots(t, env, universe, []string{"2024-01-01", "2024-01-02", "2024-01-03"})

	// SkipPull is set, so fetch reuses the seeded snapshots and the
	// provider client and gate are never touched.
	stages := DefaultStages(nil, nil, universe)
	runner := NewRunner(env, stages, nil)

	results, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 4)
	for _, r := range results {
		assert.Equal(t, StageCompleted, r.Status, r.ID)
	}

	points, err := dataset.LoadStandardized(env.Paths.StandardizedSnapshot())
	require.NoError(t, err)

	// 9 currencies over 3 dates; every non-USD currency loses its first
	// row to the lag.
	assert.Len(t, points, 8*2+3)

	seen := make(map[string]bool)
	for _, p := range points {
		seen[p.UniqueID] = true
	}
	assert.Len(t, seen, 9)

	for _, artifact := range []string{
		env.Paths.OutputPath(config.SummaryCSVFile),
		env.Paths.OutputPath(config.SummaryHTMLFile),
		env.Paths.OutputPath(config.ChartHTMLFile),
	} {
		_, err := os.Stat(artifact)
		assert.NoError(t, err, artifact)
	}
}

func TestFetchStage_SkipPullRequiresSnapshots(t *testing.T) {
	env := testEnv(t)
	stage := NewFetchStage(nil, nil, fx.DefaultUniverse())

	err := stage.Validate(env)
	require.Error(t, err, "skip-pull runs need pre-existing snapshots")
}

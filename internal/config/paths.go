package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Snapshot file names, one per pipeline stage. Each is the single durable
// artifact its stage owns.
const (
	SpotSnapshotFile         = "fx_spot_rates.csv"
	RateSnapshotFile         = "fx_interest_rates.csv"
	ReturnsSnapshotFile      = "fx_returns.csv"
	StandardizedSnapshotFile = "ftsfr_fx_returns.csv"
)

// Report artifact file names under the output directory.
const (
	SummaryCSVFile   = "summary_fx_returns.csv"
	SummaryHTMLFile  = "summary_fx_returns.html"
	ChartHTMLFile    = "fx_cumulative_returns.html"
)

// Paths resolves every file the pipeline reads or writes. DataDir holds the
// per-stage snapshots, OutputDir the generated report artifacts.
type Paths struct {
	DataDir   string
	OutputDir string
}

// NewPaths creates a Paths rooted at the given directories.
func NewPaths(dataDir, outputDir string) *Paths {
	return &Paths{DataDir: dataDir, OutputDir: outputDir}
}

// EnsureDirectories creates the data and output directories if needed.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.OutputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// SpotSnapshot returns the raw spot-rate snapshot path.
func (p *Paths) SpotSnapshot() string {
	return filepath.Join(p.DataDir, SpotSnapshotFile)
}

// RateSnapshot returns the raw interest-rate snapshot path.
func (p *Paths) RateSnapshot() string {
	return filepath.Join(p.DataDir, RateSnapshotFile)
}

// ReturnsSnapshot returns the intermediate long-form returns snapshot path.
func (p *Paths) ReturnsSnapshot() string {
	return filepath.Join(p.DataDir, ReturnsSnapshotFile)
}

// StandardizedSnapshot returns the final standardized dataset path.
func (p *Paths) StandardizedSnapshot() string {
	return filepath.Join(p.DataDir, StandardizedSnapshotFile)
}

// OutputPath resolves a report artifact under the output directory.
func (p *Paths) OutputPath(name string) string {
	return filepath.Join(p.OutputDir, name)
}

// Package snapshot reads and writes the per-stage CSV snapshot files. Every
// write goes to a temporary file in the target directory and is renamed into
// place, so a stage that fails mid-write never leaves a partial artifact.
package snapshot

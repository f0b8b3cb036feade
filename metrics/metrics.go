// Package metrics reports per-frame diagnostics about the running
// simulation: trail-field summary statistics and population occupancy,
// optionally appended to a CSV file. Grounded on
// pthm-soup/telemetry/output.go's nil-receiver-disables-output pattern and
// stats.go's csv-tagged record style.
package metrics

import (
	"fmt"
	"math"
	"os"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FrameStats is one row of the optional metrics CSV.
type FrameStats struct {
	Frame       int     `csv:"frame"`
	TrailMean   float64 `csv:"trail_mean"`
	TrailStdDev float64 `csv:"trail_stddev"`
	TrailTotal  float64 `csv:"trail_total"`
	Population  int     `csv:"population"`
}

// Summarize computes trail-field mean, sample (n-1) standard deviation, and
// total mass for one frame. trail is the flattened grid snapshot.
func Summarize(frame int, trail []float64, population int) FrameStats {
	mean := stat.Mean(trail, nil)
	variance := stat.Variance(trail, nil)
	return FrameStats{
		Frame:       frame,
		TrailMean:   mean,
		TrailStdDev: math.Sqrt(math.Max(variance, 0)),
		TrailTotal:  floats.Sum(trail),
		Population:  population,
	}
}

// Writer appends FrameStats rows to a CSV file. A nil *Writer (as returned
// by NewWriter for an empty path) disables all writes, the same
// "output optional" contract as pthm-soup's OutputManager.
type Writer struct {
	f             *os.File
	headerWritten bool
}

// NewWriter creates (or truncates) the CSV file at path. An empty path
// returns a nil *Writer with output disabled.
func NewWriter(path string) (*Writer, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("metrics: creating %s: %w", path, err)
	}
	return &Writer{f: f}, nil
}

// Write appends one row, writing the CSV header on first use.
func (w *Writer) Write(s FrameStats) error {
	if w == nil {
		return nil
	}
	rows := []FrameStats{s}
	if !w.headerWritten {
		if err := gocsv.Marshal(rows, w.f); err != nil {
			return fmt.Errorf("metrics: writing row: %w", err)
		}
		w.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(rows, w.f); err != nil {
		return fmt.Errorf("metrics: writing row: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	return w.f.Close()
}

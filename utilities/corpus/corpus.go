// Package corpus is a batch round-trip harness: it feeds every sample image
// in a directory through encode and decode and compares the result
// byte-for-byte against the source pixels. It exists to run the codec over
// real image corpora rather than synthetic unit-test buffers.
package corpus

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/boljen/go-bitmap"
	"github.com/gocarina/gocsv"
	"github.com/hashicorp/go-multierror"

	"qoipix"
	"qoipix/utilities/pixelsource"
)

// sampleExtensions lists the file suffixes the harness picks up, matching
// the formats pixelsource registers.
var sampleExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// Result is one sample's outcome. The csv tags drive the report layout.
type Result struct {
	File         string  `csv:"file"`
	Width        uint32  `csv:"width"`
	Height       uint32  `csv:"height"`
	RawBytes     int     `csv:"raw_bytes"`
	EncodedBytes int     `csv:"encoded_bytes"`
	Ratio        float64 `csv:"ratio"`
	RoundTripOK  bool    `csv:"round_trip_ok"`
}

// Report aggregates a full harness run.
type Report struct {
	Results []Result

	passed bitmap.Bitmap
	err    *multierror.Error
}

// Run verifies every sample image found directly in dir. Per-sample failures
// don't stop the run; they're accumulated and available from [Report.Err].
// The returned error is non-nil only when the directory itself can't be
// read.
func Run(dir string) (*Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("can't enumerate sample directory: %w", err)
	}

	var samples []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if sampleExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			samples = append(samples, entry.Name())
		}
	}
	sort.Strings(samples)

	report := &Report{passed: bitmap.NewSlice(len(samples))}
	for i, name := range samples {
		result, sampleErr := verifySample(filepath.Join(dir, name))
		result.File = name
		report.Results = append(report.Results, result)
		report.passed.Set(i, sampleErr == nil && result.RoundTripOK)
		if sampleErr != nil {
			report.err = multierror.Append(
				report.err, fmt.Errorf("%s: %w", name, sampleErr))
		} else if !result.RoundTripOK {
			report.err = multierror.Append(
				report.err, fmt.Errorf("%s: decoded pixels differ from source", name))
		}
	}
	return report, nil
}

func verifySample(path string) (Result, error) {
	src, err := pixelsource.FromFile(path)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Width:    src.Width,
		Height:   src.Height,
		RawBytes: len(src.Pixels),
	}

	encoded, err := qoipix.Encode(src.Pixels, src.Width, src.Height, 0)
	if err != nil {
		return result, err
	}
	result.EncodedBytes = len(encoded)
	if result.RawBytes > 0 {
		result.Ratio = float64(result.EncodedBytes) / float64(result.RawBytes)
	}

	decoded, err := qoipix.Decode(encoded)
	if err != nil {
		return result, err
	}

	result.RoundTripOK = decoded.Width == src.Width &&
		decoded.Height == src.Height &&
		bytes.Equal(decoded.Pixels, src.Pixels)
	return result, nil
}

// Err returns all accumulated per-sample failures, or nil if every sample
// round-tripped.
func (r *Report) Err() error {
	return r.err.ErrorOrNil()
}

// Failures lists the file names that didn't round-trip cleanly.
func (r *Report) Failures() []string {
	var failed []string
	for i, result := range r.Results {
		if !r.passed.Get(i) {
			failed = append(failed, result.File)
		}
	}
	return failed
}

// WriteCSV writes the per-sample results as a CSV report.
func (r *Report) WriteCSV(w io.Writer) error {
	return gocsv.Marshal(&r.Results, w)
}

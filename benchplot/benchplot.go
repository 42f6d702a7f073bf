// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchplot turns the benchmark CSV files found in "results"
// directories into PNG charts.
//
// Each CSV is drawn as a line chart when it has a "Size" or "Length"
// column and as a bar chart otherwise. The chart is written next to
// the CSV with the extension replaced by ".png".
package benchplot

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/perfuptodate/benchplot/benchchart"
	"github.com/perfuptodate/benchplot/benchcsv"
	"github.com/perfuptodate/benchplot/resultswalk"
)

// A Result describes the chart produced for one CSV file.
type Result struct {
	Source string // CSV file
	Output string // PNG file
	Mode   benchchart.Mode
	// SweepColumn is the X column of a sweep chart.
	SweepColumn string
	Unit        string
	Series      int
	Rows        int
}

// A Sink receives each Result of a Run.
type Sink interface {
	Record(ctx context.Context, r *Result) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(ctx context.Context, r *Result) error

// Record calls f(ctx, r).
func (f SinkFunc) Record(ctx context.Context, r *Result) error {
	return f(ctx, r)
}

// sweepColumns are the columns that make a sweep chart, by priority.
var sweepColumns = []string{benchcsv.Size, benchcsv.Length}

// A Processor charts single CSV files.
type Processor struct {
	Renderer *benchchart.Renderer
}

// OutputPath returns the chart path for the CSV file at path.
func OutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
}

// ProcessFile charts the CSV file at path. It returns a nil Result
// when the file has no rows or the renderer skipped it.
func (p *Processor) ProcessFile(path string) (*Result, error) {
	t, err := benchcsv.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return nil, nil
	}

	out := OutputPath(path)
	var ch *benchchart.Chart
	sweep := ""
	for _, col := range sweepColumns {
		if benchcsv.Has(t, col) {
			sweep = col
			break
		}
	}
	if sweep != "" {
		ch, err = p.Renderer.Sweep(out, t, sweep)
	} else {
		ch, err = p.Renderer.Comparison(out, t)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if ch == nil {
		return nil, nil
	}
	return &Result{
		Source:      path,
		Output:      ch.Path,
		Mode:        ch.Mode,
		SweepColumn: sweep,
		Unit:        ch.Unit,
		Series:      len(ch.Series),
		Rows:        t.Len(),
	}, nil
}

// Run charts every CSV file that resultswalk.Walk finds under root
// and hands each Result to the sinks, in order. It stops at the first
// error; charts written before it are left in place.
func Run(ctx context.Context, root string, p *Processor, sinks ...Sink) ([]*Result, error) {
	var results []*Result
	err := resultswalk.Walk(root, func(path string) error {
		r, err := p.ProcessFile(path)
		if err != nil || r == nil {
			return err
		}
		results = append(results, r)
		for _, s := range sinks {
			if err := s.Record(ctx, r); err != nil {
				return fmt.Errorf("%s: %w", r.Output, err)
			}
		}
		return nil
	})
	return results, err
}

// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchchart draws benchmark tables as PNG charts.
//
// A table whose rows sweep a size parameter becomes a line chart with
// one line per method. Any other table becomes a bar chart with one
// bar per method. Both read the "Method" and "Mean" columns described
// in package benchcsv.
package benchchart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"sort"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/perfuptodate/benchplot/benchcsv"
)

// A Mode is the shape of a chart.
type Mode int

const (
	// Comparison is a bar chart, one bar per method.
	Comparison Mode = iota
	// Sweep is a line chart over a size parameter, one line per method.
	Sweep
)

func (m Mode) String() string {
	switch m {
	case Comparison:
		return "comparison"
	case Sweep:
		return "sweep"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// A Series is the data drawn for one method.
type Series struct {
	Name string
	XYs  plotter.XYs
}

// A Chart describes a chart that was written.
type Chart struct {
	Path   string
	Mode   Mode
	Unit   string
	XLabel string
	YLabel string
	LogX   bool
	LogY   bool
	Series []Series
	// Annotations are the labels above each bar of a comparison
	// chart, in Series order.
	Annotations []string
}

// TooManySeries is the warning given for a sweep with more than
// MaxSeries methods.
const TooManySeries = "Error: The number of method must be less then 12.\n"

// aggregated mean column, as named by ggstat.AggMean
const meanOfMean = "mean " + benchcsv.Mean

const (
	lineWidth    = vg.Length(1.5)
	markerRadius = vg.Length(3)
)

// A Renderer draws charts. Each chart is drawn on its own plot and
// canvas, so nothing carries over from one chart to the next.
type Renderer struct {
	Style Style

	// Width and Height are the size of the image and DPI its
	// resolution.
	Width, Height vg.Length
	DPI           int

	// Warn, if non-nil, is called with diagnostics about charts
	// that are skipped.
	Warn func(format string, args ...interface{})

	colors []color.Color
}

// NewRenderer returns a Renderer for 6.4×4.8 inch, 300 DPI images.
func NewRenderer(style Style) (*Renderer, error) {
	if err := style.validate(); err != nil {
		return nil, err
	}
	pal, err := brewer.GetPalette(brewer.TypeQualitative, "Paired", MaxSeries)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		Style:  style,
		Width:  6.4 * vg.Inch,
		Height: 4.8 * vg.Inch,
		DPI:    300,
		colors: pal.Colors(),
	}, nil
}

func (r *Renderer) warn(format string, args ...interface{}) {
	if r.Warn != nil {
		r.Warn(format, args...)
	}
}

func (r *Renderer) color(i int) color.Color {
	return r.colors[i%len(r.colors)]
}

// Sweep writes to out a line chart of t's Mean against the numeric
// column sweep, one line per Method. X and Y are each drawn on a log
// axis when UseLogScale approves of their values.
//
// If t has more than MaxSeries methods, Sweep calls Warn and returns
// a nil Chart without writing anything.
func (r *Renderer) Sweep(out string, t *table.Table, sweep string) (*Chart, error) {
	methods, err := benchcsv.Strings(t, benchcsv.Method)
	if err != nil {
		return nil, err
	}
	names := slice.Nub(methods).([]string)
	if len(names) > MaxSeries {
		r.warn(TooManySeries)
		return nil, nil
	}

	unit, err := benchcsv.Unit(t)
	if err != nil {
		return nil, err
	}
	t, err = benchcsv.Select(t, benchcsv.Method, benchcsv.Mean, sweep)
	if err != nil {
		return nil, err
	}
	if t, err = benchcsv.ParseColumn(t, benchcsv.Mean); err != nil {
		return nil, err
	}
	if t, err = benchcsv.ParseColumn(t, sweep); err != nil {
		return nil, err
	}
	xs := t.MustColumn(sweep).([]float64)
	ys := t.MustColumn(benchcsv.Mean).([]float64)

	ch := &Chart{
		Path:   out,
		Mode:   Sweep,
		Unit:   unit,
		XLabel: sweep,
		YLabel: yLabel(unit),
		LogX:   UseLogScale(xs),
		LogY:   UseLogScale(ys),
		Series: sweepSeries(t, names, sweep),
	}

	p := r.newPlot(ch)
	if ch.LogX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = decadeTicks{}
	}
	if ch.LogY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = decadeTicks{}
	}
	for i, s := range ch.Series {
		l, sc, err := plotter.NewLinePoints(s.XYs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name, err)
		}
		l.LineStyle = draw.LineStyle{
			Color:  r.color(i),
			Width:  lineWidth,
			Dashes: dashPattern(i, lineWidth),
		}
		sc.GlyphStyle = draw.GlyphStyle{
			Color:  r.color(i),
			Radius: markerRadius,
			Shape:  markers[i],
		}
		p.Add(l, sc)
		p.Legend.Add(s.Name, l, sc)
	}
	p.Legend.Top = true
	p.Legend.Left = true

	if err := r.save(p, out); err != nil {
		return nil, err
	}
	return ch, nil
}

// sweepSeries groups the parsed rows of t into one series per name,
// sorted by X. Rows repeating a method and X value become one point at
// their mean.
func sweepSeries(t *table.Table, names []string, sweep string) []Series {
	agg := table.Flatten(ggstat.Agg(benchcsv.Method, sweep)(ggstat.AggMean(benchcsv.Mean)).F(t))
	methods := agg.MustColumn(benchcsv.Method).([]string)
	xs := agg.MustColumn(sweep).([]float64)
	ys := agg.MustColumn(meanOfMean).([]float64)

	series := make([]Series, len(names))
	index := make(map[string]int, len(names))
	for i, name := range names {
		series[i].Name = name
		index[name] = i
	}
	for i, m := range methods {
		s := &series[index[m]]
		s.XYs = append(s.XYs, plotter.XY{X: xs[i], Y: ys[i]})
	}
	for _, s := range series {
		xys := s.XYs
		sort.SliceStable(xys, func(i, j int) bool { return xys[i].X < xys[j].X })
	}
	return series
}

// Comparison writes to out a bar chart with one bar per Method of t,
// its height the Mean and annotated with the height to two decimal
// places. Rows repeating a method are drawn at their mean.
func (r *Renderer) Comparison(out string, t *table.Table) (*Chart, error) {
	unit, err := benchcsv.Unit(t)
	if err != nil {
		return nil, err
	}
	t, err = benchcsv.Select(t, benchcsv.Method, benchcsv.Mean)
	if err != nil {
		return nil, err
	}
	if t, err = benchcsv.ParseColumn(t, benchcsv.Mean); err != nil {
		return nil, err
	}
	agg := table.Flatten(ggstat.Agg(benchcsv.Method)(ggstat.AggMean(benchcsv.Mean)).F(t))
	names := agg.MustColumn(benchcsv.Method).([]string)
	heights := agg.MustColumn(meanOfMean).([]float64)

	ch := &Chart{
		Path:   out,
		Mode:   Comparison,
		Unit:   unit,
		YLabel: yLabel(unit),
	}
	p := r.newPlot(ch)

	w := r.barWidth(len(names))
	tops := make(plotter.XYs, len(names))
	for i, h := range heights {
		bar, err := plotter.NewBarChart(plotter.Values{h}, w)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", names[i], err)
		}
		bar.XMin = float64(i)
		bar.Color = r.color(i)
		bar.LineStyle.Width = 0
		p.Add(bar)

		tops[i] = plotter.XY{X: float64(i), Y: h}
		ch.Series = append(ch.Series, Series{Name: names[i], XYs: plotter.XYs{tops[i]}})
		ch.Annotations = append(ch.Annotations, fmt.Sprintf("%.2f", h))
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: tops, Labels: ch.Annotations})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		sty := &labels.TextStyle[i]
		sty.Font.Size *= vg.Length(r.Style.FontScale)
		sty.XAlign = draw.XCenter
		sty.YAlign = draw.YBottom
	}
	labels.Offset = vg.Point{Y: vg.Points(1)}
	p.Add(labels)
	p.NominalX(names...)

	if err := r.save(p, out); err != nil {
		return nil, err
	}
	return ch, nil
}

// barWidth leaves a fifth of each category's share of the width empty.
func (r *Renderer) barWidth(n int) vg.Length {
	if n < 1 {
		n = 1
	}
	return (r.Width - vg.Inch) / vg.Length(n) * 0.8
}

func yLabel(unit string) string {
	return "Mean (" + unit + ")"
}

func (r *Renderer) newPlot(ch *Chart) *plot.Plot {
	p := plot.New()
	r.Style.apply(p)
	p.X.Label.Text = ch.XLabel
	p.Y.Label.Text = ch.YLabel

	// Slant the X labels so long method names and sizes don't collide.
	p.X.Tick.Label.Rotation = math.Pi / 6
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YTop
	return p
}

// save writes p to path as a PNG, replacing any existing file.
func (r *Renderer) save(p *plot.Plot, path string) error {
	can := vgimg.NewWith(vgimg.UseWH(r.Width, r.Height),
		vgimg.UseDPI(r.DPI), vgimg.UseBackgroundColor(r.Style.background()))
	p.Draw(draw.New(can))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: can}).WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"math"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// MaxSeries is the most series a sweep chart can show. markers and
// dashes must both have exactly MaxSeries entries.
const MaxSeries = 12

// markers is indexed by series number: o X s P D ^ v p * < > h.
var markers = [MaxSeries]draw.GlyphDrawer{
	draw.CircleGlyph{},
	crossGlyph{angle: math.Pi / 4},
	draw.BoxGlyph{},
	crossGlyph{},
	polygonGlyph{sides: 4, angle: math.Pi / 2},
	polygonGlyph{sides: 3, angle: math.Pi / 2},
	polygonGlyph{sides: 3, angle: -math.Pi / 2},
	polygonGlyph{sides: 5, angle: math.Pi / 2},
	starGlyph{points: 5},
	polygonGlyph{sides: 3, angle: math.Pi},
	polygonGlyph{sides: 3},
	polygonGlyph{sides: 6, angle: math.Pi / 2},
}

// dashes is indexed by series number. Lengths are in multiples of the
// line width; nil is a solid line.
var dashes = [MaxSeries][]float64{
	nil,
	{4, 1.5},
	{1, 1},
	{3, 1, 1.5, 1},
	{5, 1, 1, 1},
	{5, 1, 2, 1, 2, 1},
	nil,
	{4, 1.5},
	{1, 1},
	{3, 1, 1.5, 1},
	{5, 1, 1, 1},
	{5, 1, 2, 1, 2, 1},
}

// dashPattern returns the dash lengths for series i drawn with lines
// of width w.
func dashPattern(i int, w vg.Length) []vg.Length {
	d := dashes[i%MaxSeries]
	if d == nil {
		return nil
	}
	ls := make([]vg.Length, len(d))
	for j, x := range d {
		ls[j] = vg.Length(x) * w
	}
	return ls
}

// polygonGlyph is a filled regular polygon with its first vertex in
// direction angle (radians, counter-clockwise from the +X axis).
type polygonGlyph struct {
	sides int
	angle float64
}

// DrawGlyph implements the Glyph interface.
func (g polygonGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	pts := make([]vg.Point, g.sides)
	for i := range pts {
		a := g.angle + 2*math.Pi*float64(i)/float64(g.sides)
		pts[i] = polar(pt, sty.Radius, a)
	}
	c.FillPolygon(sty.Color, pts)
}

// starGlyph is a filled star.
type starGlyph struct {
	points int
}

// DrawGlyph implements the Glyph interface.
func (g starGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	n := 2 * g.points
	pts := make([]vg.Point, n)
	for i := range pts {
		r := sty.Radius
		if i%2 == 1 {
			r *= 0.4
		}
		pts[i] = polar(pt, r, math.Pi/2+2*math.Pi*float64(i)/float64(n))
	}
	c.FillPolygon(sty.Color, pts)
}

// crossGlyph is a heavy filled plus sign, turned by angle. Turned by
// π/4 it is a heavy X.
type crossGlyph struct {
	angle float64
}

// DrawGlyph implements the Glyph interface.
func (g crossGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	r := float64(sty.Radius)
	w := r / 3
	// Outline of a plus centred on the origin, one arm at a time.
	outline := [...][2]float64{
		{w, w}, {r, w}, {r, -w}, {w, -w},
		{w, -r}, {-w, -r}, {-w, -w}, {-r, -w},
		{-r, w}, {-w, w}, {-w, r}, {w, r},
	}
	sin, cos := math.Sincos(g.angle)
	pts := make([]vg.Point, len(outline))
	for i, p := range outline {
		x := p[0]*cos - p[1]*sin
		y := p[0]*sin + p[1]*cos
		pts[i] = vg.Point{X: pt.X + vg.Length(x), Y: pt.Y + vg.Length(y)}
	}
	c.FillPolygon(sty.Color, pts)
}

func polar(center vg.Point, r vg.Length, angle float64) vg.Point {
	sin, cos := math.Sincos(angle)
	return vg.Point{X: center.X + r*vg.Length(cos), Y: center.Y + r*vg.Length(sin)}
}

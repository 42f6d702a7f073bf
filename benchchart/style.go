// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"fmt"
	"image/color"
	"os"
	"strconv"

	"github.com/kelseyhightower/envconfig"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v2"
)

// A GridStyle selects the background and grid lines of a chart.
type GridStyle int

const (
	// WhiteGrid draws light grey grid lines on white.
	WhiteGrid GridStyle = iota
	// DarkGrid draws white grid lines on a pale grey background.
	DarkGrid
	// White draws no grid.
	White
)

var gridStyleNames = map[GridStyle]string{
	WhiteGrid: "whitegrid",
	DarkGrid:  "darkgrid",
	White:     "white",
}

func (g GridStyle) String() string {
	if s, ok := gridStyleNames[g]; ok {
		return s
	}
	return fmt.Sprintf("GridStyle(%d)", int(g))
}

// ParseGridStyle returns the GridStyle named s.
func ParseGridStyle(s string) (GridStyle, error) {
	for g, name := range gridStyleNames {
		if name == s {
			return g, nil
		}
	}
	return 0, fmt.Errorf("unknown grid style %q", s)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (g *GridStyle) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return g.Decode(s)
}

// Decode implements envconfig.Decoder. An empty value leaves g
// unchanged.
func (g *GridStyle) Decode(value string) error {
	if value == "" {
		return nil
	}
	v, err := ParseGridStyle(value)
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// Style is the fixed look shared by every chart a Renderer draws.
type Style struct {
	GridStyle GridStyle `yaml:"grid_style" envconfig:"GRID_STYLE"`
	// FontScale multiplies every default text size.
	FontScale Scale `yaml:"font_scale" envconfig:"FONT_SCALE"`
}

// A Scale is a multiplier for text sizes.
type Scale float64

// Decode implements envconfig.Decoder. An empty value leaves x
// unchanged.
func (x *Scale) Decode(value string) error {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("bad font scale %q: %w", value, err)
	}
	*x = Scale(f)
	return nil
}

// DefaultStyle returns a light grid with text at 0.8 of its default
// size.
func DefaultStyle() Style {
	return Style{GridStyle: WhiteGrid, FontScale: 0.8}
}

// LoadStyle starts from DefaultStyle, applies the YAML file at path
// if path is not empty, then applies the BENCHPLOT_GRID_STYLE and
// BENCHPLOT_FONT_SCALE environment variables. A variable set to the
// empty string is treated as unset.
func LoadStyle(path string) (Style, error) {
	s := DefaultStyle()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Style{}, err
		}
		if err := yaml.UnmarshalStrict(data, &s); err != nil {
			return Style{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := envconfig.Process("benchplot", &s); err != nil {
		return Style{}, err
	}
	if err := s.validate(); err != nil {
		return Style{}, err
	}
	return s, nil
}

func (s Style) validate() error {
	if _, ok := gridStyleNames[s.GridStyle]; !ok {
		return fmt.Errorf("unknown grid style %v", s.GridStyle)
	}
	if !(s.FontScale > 0) {
		return fmt.Errorf("font scale must be positive, got %v", s.FontScale)
	}
	return nil
}

var (
	paleGrey  = color.RGBA{0xEA, 0xEA, 0xF2, 0xFF}
	lightGrey = color.RGBA{0xCC, 0xCC, 0xCC, 0xFF}
)

func (s Style) background() color.Color {
	if s.GridStyle == DarkGrid {
		return paleGrey
	}
	return color.White
}

// apply scales the text of p and adds the grid, which must be added
// before any data so that it is drawn underneath.
func (s Style) apply(p *plot.Plot) {
	scale := vg.Length(s.FontScale)
	p.Title.TextStyle.Font.Size *= scale
	p.X.Label.TextStyle.Font.Size *= scale
	p.Y.Label.TextStyle.Font.Size *= scale
	p.X.Tick.Label.Font.Size *= scale
	p.Y.Tick.Label.Font.Size *= scale
	p.Legend.TextStyle.Font.Size *= scale

	p.BackgroundColor = s.background()

	var lines color.Color
	switch s.GridStyle {
	case WhiteGrid:
		lines = lightGrey
	case DarkGrid:
		lines = color.White
	default:
		return
	}
	grid := plotter.NewGrid()
	grid.Vertical.Color = lines
	grid.Vertical.Width = vg.Points(0.8)
	grid.Horizontal.Color = lines
	grid.Horizontal.Width = vg.Points(0.8)
	p.Add(grid)
}

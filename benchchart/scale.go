// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"math"
	"strconv"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/plot"
)

const (
	// Values this close to zero make a log axis meaningless.
	logFloor = 0.001
	// Minimum max/min ratio (two decades) for a log axis.
	logRatio = 100
)

// UseLogScale reports whether xs should be drawn on a logarithmic
// axis: its bounds are both at least 0.001 and span at least two
// orders of magnitude.
func UseLogScale(xs []float64) bool {
	if len(xs) == 0 {
		return false
	}
	min, max := stats.Bounds(xs)
	if min < logFloor || max < logFloor {
		return false
	}
	return max/min >= logRatio
}

// decadeTicks labels each power of ten on a log axis and puts
// unlabeled minor ticks at its multiples.
type decadeTicks struct{}

// Ticks implements plot.Ticker.
func (decadeTicks) Ticks(min, max float64) []plot.Tick {
	if !(min > 0) || max < min {
		return nil
	}
	var ticks []plot.Tick
	for e := math.Floor(math.Log10(min)); ; e++ {
		base := math.Pow(10, e)
		if base > max {
			break
		}
		for m := 1.0; m < 10; m++ {
			v := m * base
			if v < min {
				continue
			}
			if v > max {
				break
			}
			t := plot.Tick{Value: v}
			if m == 1 {
				t.Label = strconv.FormatFloat(v, 'g', -1, 64)
			}
			ticks = append(ticks, t)
		}
	}
	return ticks
}

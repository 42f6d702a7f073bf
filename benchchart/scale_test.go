// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"testing"
)

func TestUseLogScale(t *testing.T) {
	for _, test := range []struct {
		xs   []float64
		want bool
	}{
		{nil, false},
		{[]float64{1}, false},
		{[]float64{1, 99}, false},
		{[]float64{1, 100}, true},
		{[]float64{100, 1, 50}, true},
		{[]float64{0.001, 0.1}, true},
		{[]float64{0.001, 0.0999}, false},
		// Near zero never gets a log axis, whatever the ratio.
		{[]float64{0.0009, 1000}, false},
		{[]float64{0, 1e9}, false},
		{[]float64{-5, 1e9}, false},
		{[]float64{0.0001, 0.0005}, false},
		{[]float64{10, 100, 1000, 10000}, true},
	} {
		if got := UseLogScale(test.xs); got != test.want {
			t.Errorf("UseLogScale(%v) = %v, want %v", test.xs, got, test.want)
		}
	}
}

func TestUseLogScaleRatio(t *testing.T) {
	// Above the floor the answer depends only on max/min.
	for _, min := range []float64{0.001, 0.5, 3, 1e6} {
		for _, ratio := range []float64{1, 2, 99.9, 100, 100.1, 1e4} {
			xs := []float64{min * ratio, min}
			want := ratio >= 100
			if got := UseLogScale(xs); got != want {
				t.Errorf("UseLogScale(%v) = %v, want %v", xs, got, want)
			}
		}
	}
}

func TestDecadeTicks(t *testing.T) {
	ticks := decadeTicks{}.Ticks(5, 2000)
	var labels []string
	for _, tk := range ticks {
		if tk.Value < 5 || tk.Value > 2000 {
			t.Errorf("tick %v outside [5, 2000]", tk.Value)
		}
		if tk.Label != "" {
			labels = append(labels, tk.Label)
		}
	}
	want := []string{"10", "100", "1000"}
	if len(labels) != len(want) {
		t.Fatalf("labels %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels %v, want %v", labels, want)
			break
		}
	}
	if got := (decadeTicks{}).Ticks(0, 10); got != nil {
		t.Errorf("Ticks(0, 10) = %v, want nil", got)
	}
}

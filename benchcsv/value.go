// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
)

// ParseValue parses a formatted measurement such as "1,234.50 ms" or
// "\"12 ns\"". Surrounding quotes and thousands separators are
// dropped and everything from the first space on (the unit) is
// ignored. A value without a space is parsed whole.
func ParseValue(s string) (float64, error) {
	v := strings.Trim(s, `"`)
	v = strings.ReplaceAll(v, ",", "")
	if i := strings.IndexByte(v, ' '); i >= 0 {
		v = v[:i]
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("bad value %q: %w", s, err)
	}
	return f, nil
}

// ParseColumn returns a copy of t in which column col, which must hold
// strings, is replaced by the []float64 of its parsed values. The
// first malformed cell stops the conversion.
func ParseColumn(t *table.Table, col string) (*table.Table, error) {
	ss, err := Strings(t, col)
	if err != nil {
		return nil, err
	}
	fs := make([]float64, len(ss))
	for i, s := range ss {
		fs[i], err = ParseValue(s)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", col, i+1, err)
		}
	}
	return table.NewBuilder(t).Add(col, fs).Done(), nil
}

// Unit returns the unit of the first row's Mean, that is the word
// following the first space. All rows of a file are assumed to share
// it.
func Unit(t *table.Table) (string, error) {
	means, err := Strings(t, Mean)
	if err != nil {
		return "", err
	}
	if len(means) == 0 {
		return "", fmt.Errorf("no rows")
	}
	_, unit, ok := strings.Cut(strings.Trim(means[0], `"`), " ")
	if !ok {
		return "", fmt.Errorf("no unit in %s %q", Mean, means[0])
	}
	unit, _, _ = strings.Cut(unit, " ")
	return unit, nil
}

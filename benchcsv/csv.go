// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchcsv loads benchmark CSV exports into tables and
// converts their formatted measurement columns to numbers.
//
// A benchmark CSV has one row per measurement. The columns this
// package cares about are "Method", the name of the measured series,
// and "Mean", a number followed by a space and a unit, such as
// "1,234.50 ms". Sweep benchmarks add a numeric "Size" or "Length"
// column. All other columns are carried along untouched.
package benchcsv

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aclements/go-gg/table"
)

const utf8BOM = "\ufeff"

// Well-known column names.
const (
	Method = "Method"
	Mean   = "Mean"
	Size   = "Size"
	Length = "Length"
)

// ErrMissingColumn is returned (wrapped with the column name) when a
// table lacks a column that an operation needs.
var ErrMissingColumn = errors.New("missing column")

// ReadFile reads the CSV file at path. See Read.
func ReadFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Read reads a CSV document whose first record names the columns.
// Every column of the result is a []string; use ParseColumn to turn
// a column into numbers. A document with only a header yields a
// table with columns but no rows. A leading UTF-8 byte order mark is
// ignored.
func Read(r io.Reader) (*table.Table, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(len(utf8BOM)); err == nil && string(bom) == utf8BOM {
		br.Discard(len(utf8BOM))
	}
	cr := csv.NewReader(br)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return new(table.Table), nil
	}
	return table.TableFromStrings(records[0], records[1:], false), nil
}

// Has reports whether t has a column named col.
func Has(t *table.Table, col string) bool {
	return t.Column(col) != nil
}

// Select returns a table holding only cols from t, in that order.
func Select(t *table.Table, cols ...string) (*table.Table, error) {
	var b table.Builder
	for _, col := range cols {
		data := t.Column(col)
		if data == nil {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, col)
		}
		b.Add(col, data)
	}
	return b.Done(), nil
}

// Strings returns column col of t as a []string.
func Strings(t *table.Table, col string) ([]string, error) {
	data := t.Column(col)
	if data == nil {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, col)
	}
	ss, ok := data.([]string)
	if !ok {
		return nil, fmt.Errorf("column %q has type %T, want []string", col, data)
	}
	return ss, nil
}

// Floats returns column col of t as a []float64.
func Floats(t *table.Table, col string) ([]float64, error) {
	data := t.Column(col)
	if data == nil {
		return nil, fmt.Errorf("%w %q", ErrMissingColumn, col)
	}
	fs, ok := data.([]float64)
	if !ok {
		return nil, fmt.Errorf("column %q has type %T, want []float64", col, data)
	}
	return fs, nil
}

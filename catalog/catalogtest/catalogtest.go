// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package catalogtest opens throwaway catalogs for tests.
package catalogtest

import (
	"testing"

	"github.com/perfuptodate/benchplot/catalog"
	_ "github.com/perfuptodate/benchplot/catalog/sqlite3"
)

// NewDB returns an empty in-memory sqlite3 catalog that is closed
// when the test finishes.
func NewDB(t *testing.T) *catalog.DB {
	t.Helper()
	d, err := catalog.OpenSQL("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close catalog: %v", err)
		}
	})
	if runs, err := d.CountRuns(); err != nil {
		t.Fatal(err)
	} else if runs != 0 {
		t.Fatalf("found %d row(s) in Runs, want 0", runs)
	}
	return d
}

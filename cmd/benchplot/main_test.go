// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/perfuptodate/benchplot/catalog"
)

func unsetStyleEnv(t *testing.T) {
	for _, k := range []string{"BENCHPLOT_GRID_STYLE", "BENCHPLOT_FONT_SCALE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
}

func TestRun(t *testing.T) {
	unsetStyleEnv(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "proj", "results", "bars.csv"), "Method,Mean\nA,1.5 ms\nB,2.5 ms\n")
	writeFile(t, filepath.Join(root, "proj", "results", "lines.csv"), "Method,Size,Mean\nA,1,1 ns\nA,10,10 ns\n")
	writeFile(t, filepath.Join(root, "proj", "other", "skip.csv"), "Method,Mean\nA,1 ms\n")

	dsn := filepath.Join(t.TempDir(), "catalog.db")
	index := filepath.Join(root, "index.html")
	cfg := config{
		root:          root,
		catalogDriver: "sqlite3",
		catalogDSN:    dsn,
		index:         index,
		verbose:       true,
	}
	if err := run(context.Background(), cfg); err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, name := range []string{"proj/results/bars.png", "proj/results/lines.png"} {
		if _, err := os.Stat(filepath.Join(root, name)); err != nil {
			t.Errorf("missing chart: %v", err)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "proj", "other", "skip.png")); err == nil {
		t.Errorf("chart written outside results directory")
	}

	page, err := os.ReadFile(index)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`src="proj/results/bars.png"`, `src="proj/results/lines.png"`} {
		if !strings.Contains(string(page), want) {
			t.Errorf("index missing %q", want)
		}
	}

	db, err := catalog.OpenSQL("sqlite3", dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if n, err := db.CountRuns(); err != nil || n != 1 {
		t.Fatalf("CountRuns = %d, %v, want 1, nil", n, err)
	}
	raw, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer raw.Close()
	var runID string
	if err := raw.QueryRow("SELECT RunID FROM Runs").Scan(&runID); err != nil {
		t.Fatal(err)
	}
	charts, err := db.Charts(context.Background(), runID)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, c := range charts {
		rel, _ := filepath.Rel(root, c.Output)
		got = append(got, filepath.ToSlash(rel)+" "+c.Mode)
	}
	want := []string{"proj/results/bars.png comparison", "proj/results/lines.png sweep"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("catalog mismatch (-want +got):\n%s", diff)
	}
}

func TestRunStyleError(t *testing.T) {
	unsetStyleEnv(t)
	style := filepath.Join(t.TempDir(), "style.yaml")
	writeFile(t, style, "grid_style: neon\n")
	if err := run(context.Background(), config{root: t.TempDir(), style: style}); err == nil {
		t.Error("run with bad style succeeded")
	}
}

func TestRunMalformed(t *testing.T) {
	unsetStyleEnv(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "results", "bad.csv"), "Method,Mean\nA,fast\n")
	err := run(context.Background(), config{root: root})
	if err == nil || !strings.Contains(err.Error(), "bad.csv") {
		t.Errorf("run = %v, want error naming bad.csv", err)
	}
}

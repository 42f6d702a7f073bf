// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"os"
	"path/filepath"
	"testing"
)

func writeStyle(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "style.yaml")
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

// unsetStyleEnv clears the style variables for the rest of the test.
func unsetStyleEnv(t *testing.T) {
	for _, k := range []string{"BENCHPLOT_GRID_STYLE", "BENCHPLOT_FONT_SCALE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadStyleDefault(t *testing.T) {
	unsetStyleEnv(t)

	s, err := LoadStyle("")
	if err != nil {
		t.Fatal(err)
	}
	if s != DefaultStyle() {
		t.Errorf("got %+v, want %+v", s, DefaultStyle())
	}
	if s.GridStyle != WhiteGrid || s.FontScale != 0.8 {
		t.Errorf("default style is %+v, want whitegrid at 0.8", s)
	}
}

func TestLoadStyleFile(t *testing.T) {
	unsetStyleEnv(t)

	s, err := LoadStyle(writeStyle(t, "grid_style: darkgrid\nfont_scale: 1.5\n"))
	if err != nil {
		t.Fatal(err)
	}
	if want := (Style{GridStyle: DarkGrid, FontScale: 1.5}); s != want {
		t.Errorf("got %+v, want %+v", s, want)
	}

	// Fields missing from the file keep their defaults.
	s, err = LoadStyle(writeStyle(t, "grid_style: white\n"))
	if err != nil {
		t.Fatal(err)
	}
	if want := (Style{GridStyle: White, FontScale: 0.8}); s != want {
		t.Errorf("got %+v, want %+v", s, want)
	}
}

func TestLoadStyleEnvOverridesFile(t *testing.T) {
	t.Setenv("BENCHPLOT_GRID_STYLE", "white")
	t.Setenv("BENCHPLOT_FONT_SCALE", "2")

	s, err := LoadStyle(writeStyle(t, "grid_style: darkgrid\nfont_scale: 1.5\n"))
	if err != nil {
		t.Fatal(err)
	}
	if want := (Style{GridStyle: White, FontScale: 2}); s != want {
		t.Errorf("got %+v, want %+v", s, want)
	}
}

func TestLoadStyleEmptyEnv(t *testing.T) {
	t.Setenv("BENCHPLOT_GRID_STYLE", "")
	t.Setenv("BENCHPLOT_FONT_SCALE", "")

	s, err := LoadStyle("")
	if err != nil {
		t.Fatalf("empty variables: %v", err)
	}
	if s != DefaultStyle() {
		t.Errorf("got %+v, want %+v", s, DefaultStyle())
	}

	s, err = LoadStyle(writeStyle(t, "grid_style: darkgrid\nfont_scale: 1.5\n"))
	if err != nil {
		t.Fatal(err)
	}
	if want := (Style{GridStyle: DarkGrid, FontScale: 1.5}); s != want {
		t.Errorf("empty variables overrode file: got %+v, want %+v", s, want)
	}
}

func TestLoadStyleErrors(t *testing.T) {
	unsetStyleEnv(t)

	for _, content := range []string{
		"grid_style: plaid\n",
		"font_scale: 0\n",
		"font_scale: -1\n",
		"colour: red\n",
	} {
		if s, err := LoadStyle(writeStyle(t, content)); err == nil {
			t.Errorf("%q: got %+v, want error", content, s)
		}
	}
	if _, err := LoadStyle(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("want error for missing file")
	}

	t.Setenv("BENCHPLOT_GRID_STYLE", "plaid")
	if s, err := LoadStyle(""); err == nil {
		t.Errorf("bad env: got %+v, want error", s)
	}
	unsetStyleEnv(t)
	t.Setenv("BENCHPLOT_FONT_SCALE", "big")
	if s, err := LoadStyle(""); err == nil {
		t.Errorf("bad font scale env: got %+v, want error", s)
	}
}

func TestGridStyleString(t *testing.T) {
	for _, g := range []GridStyle{WhiteGrid, DarkGrid, White} {
		back, err := ParseGridStyle(g.String())
		if err != nil || back != g {
			t.Errorf("ParseGridStyle(%q) = %v, %v", g.String(), back, err)
		}
	}
	if got := GridStyle(9).String(); got != "GridStyle(9)" {
		t.Errorf("got %q", got)
	}
}

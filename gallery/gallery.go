// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gallery writes an HTML page showing every chart of a run.
package gallery

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/safehtml/template"

	"github.com/perfuptodate/benchplot/benchplot"
)

// A Gallery is a benchplot.Sink that collects results for WriteFile.
type Gallery struct {
	Title   string
	results []*benchplot.Result
}

var _ benchplot.Sink = (*Gallery)(nil)

// Record adds r to the gallery.
func (g *Gallery) Record(ctx context.Context, r *benchplot.Result) error {
	g.results = append(g.results, r)
	return nil
}

// Len returns the number of charts recorded.
func (g *Gallery) Len() int { return len(g.results) }

var pageTmpl = template.Must(template.New("gallery").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
{{- if not .Charts}}
<p>No charts.</p>
{{- end}}
{{- range .Charts}}
<h2>{{.Source}}</h2>
<p class="meta">{{.Mode}}{{with .SweepColumn}} over {{.}}{{end}}, {{.Series}} series, {{.Rows}} rows, unit {{.Unit}}</p>
<img src="{{.Image}}" alt="{{.Source}}" width="960">
{{- end}}
</body>
</html>
`))

type pageChart struct {
	Source      string
	Image       string
	Mode        string
	SweepColumn string
	Series      int
	Rows        int
	Unit        string
}

// WriteFile writes the gallery page to file. Paths on the page are
// relative to the directory containing file.
func (g *Gallery) WriteFile(file string) error {
	dir, err := filepath.Abs(filepath.Dir(file))
	if err != nil {
		return err
	}
	title := g.Title
	if title == "" {
		title = "Benchmark charts"
	}
	data := struct {
		Title  string
		Charts []pageChart
	}{Title: title}
	for _, r := range g.results {
		src, err := relTo(dir, r.Source)
		if err != nil {
			return err
		}
		img, err := relTo(dir, r.Output)
		if err != nil {
			return err
		}
		data.Charts = append(data.Charts, pageChart{
			Source:      src,
			Image:       img,
			Mode:        r.Mode.String(),
			SweepColumn: r.SweepColumn,
			Series:      r.Series,
			Rows:        r.Rows,
			Unit:        r.Unit,
		})
	}
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	return os.WriteFile(file, buf.Bytes(), 0666)
}

// relTo returns the slash-separated path of file relative to dir.
func relTo(dir, file string) (string, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchplot draws a PNG chart beside every benchmark CSV file found in
// a results directory.
//
// Usage:
//
//	benchplot [flags]
//
// Benchplot walks the parent of the current directory (or -root) and,
// for each file named *.csv whose directory is called "results", reads
// a table with Method and Mean columns. A table with a Size or Length
// column becomes a line chart of Mean against that column, one line
// per method. Any other table becomes a bar chart with one bar per
// method. The chart is written next to the CSV file with a .png
// extension.
//
// Charts can additionally be recorded in a SQL catalog, uploaded to a
// Cloud Storage bucket and listed on an HTML page.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/perfuptodate/benchplot/benchchart"
	"github.com/perfuptodate/benchplot/benchplot"
	"github.com/perfuptodate/benchplot/catalog"
	_ "github.com/perfuptodate/benchplot/catalog/sqlite3"
	"github.com/perfuptodate/benchplot/gallery"
	"github.com/perfuptodate/benchplot/publish"
)

type config struct {
	root  string
	style string

	catalogDriver, catalogDSN string

	gcsBucket, gcsPrefix, gcsCredentials string

	index   string
	verbose bool
}

func main() {
	log.SetPrefix("benchplot: ")
	log.SetFlags(0)

	var cfg config
	flag.StringVar(&cfg.root, "root", "", "scan `dir` for results directories (default parent of the working directory)")
	flag.StringVar(&cfg.style, "style", "", "read chart style from YAML `file`")
	flag.StringVar(&cfg.catalogDriver, "catalog-driver", "sqlite3", "SQL `driver` for the catalog (sqlite3 or mysql)")
	flag.StringVar(&cfg.catalogDSN, "catalog-dsn", "", "record charts in the catalog at `dsn`")
	flag.StringVar(&cfg.gcsBucket, "gcs-bucket", "", "upload charts to Cloud Storage `bucket`")
	flag.StringVar(&cfg.gcsPrefix, "gcs-prefix", "", "object name `prefix` for uploaded charts")
	flag.StringVar(&cfg.gcsCredentials, "gcs-credentials", "", "service account key `file` (default Application Default Credentials)")
	flag.StringVar(&cfg.index, "index", "", "write an HTML gallery to `file`")
	flag.BoolVar(&cfg.verbose, "v", false, "log each chart as it is written")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 0 {
		usage()
	}

	if cfg.root == "" {
		wd, err := os.Getwd()
		if err != nil {
			log.Fatal(err)
		}
		cfg.root = filepath.Dir(wd)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage of benchplot:
	benchplot [flags]
`)
	flag.PrintDefaults()
	os.Exit(2)
}

func warn(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
}

func run(ctx context.Context, cfg config) error {
	style, err := benchchart.LoadStyle(cfg.style)
	if err != nil {
		return err
	}
	r, err := benchchart.NewRenderer(style)
	if err != nil {
		return err
	}
	r.Warn = warn
	proc := &benchplot.Processor{Renderer: r}

	var sinks []benchplot.Sink
	if cfg.verbose {
		sinks = append(sinks, benchplot.SinkFunc(func(ctx context.Context, res *benchplot.Result) error {
			log.Printf("%s: %s chart, %d series", res.Output, res.Mode, res.Series)
			return nil
		}))
	}

	if cfg.catalogDSN != "" {
		db, err := catalog.OpenSQL(cfg.catalogDriver, cfg.catalogDSN)
		if err != nil {
			return fmt.Errorf("open catalog: %w", err)
		}
		defer db.Close()
		cr, err := db.NewRun(ctx, cfg.root)
		if err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
		if cfg.verbose {
			log.Printf("catalog run %s", cr.ID)
		}
		sinks = append(sinks, cr)
	}

	if cfg.gcsBucket != "" {
		opts, err := gcsOptions(ctx, cfg.gcsCredentials)
		if err != nil {
			return err
		}
		pub, err := publish.NewGCS(ctx, cfg.gcsBucket, cfg.gcsPrefix, cfg.root, opts...)
		if err != nil {
			return fmt.Errorf("cloud storage: %w", err)
		}
		defer pub.Close()
		sinks = append(sinks, pub)
	}

	var g *gallery.Gallery
	if cfg.index != "" {
		g = &gallery.Gallery{Title: "Benchmarks in " + cfg.root}
		sinks = append(sinks, g)
	}

	_, err = benchplot.Run(ctx, cfg.root, proc, sinks...)
	if err != nil {
		return err
	}
	if g != nil {
		return g.WriteFile(cfg.index)
	}
	return nil
}

// gcsOptions returns the client options for a service account key
// file, or for Application Default Credentials if credentials is
// empty.
func gcsOptions(ctx context.Context, credentials string) ([]option.ClientOption, error) {
	if credentials != "" {
		return []option.ClientOption{option.WithCredentialsFile(credentials)}, nil
	}
	ts, err := google.DefaultTokenSource(ctx, storage.ScopeReadWrite)
	if err != nil {
		return nil, fmt.Errorf("cloud storage credentials: %w", err)
	}
	return []option.ClientOption{option.WithTokenSource(ts)}, nil
}

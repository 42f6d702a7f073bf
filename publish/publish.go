// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package publish uploads rendered charts to Google Cloud Storage.
package publish

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/perfuptodate/benchplot/benchplot"
)

// A Publisher is a benchplot.Sink that copies each rendered chart
// into a bucket.
type Publisher struct {
	prefix, root string

	// create opens a writer for the named object.
	create func(ctx context.Context, name string) (io.WriteCloser, error)
	close  func() error
}

var _ benchplot.Sink = (*Publisher)(nil)

// NewGCS returns a Publisher that writes charts under root to bucket.
// Object names are prefix followed by the chart's slash-separated path
// relative to root.
func NewGCS(ctx context.Context, bucket, prefix, root string, opts ...option.ClientOption) (*Publisher, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	b := client.Bucket(bucket)
	return &Publisher{
		prefix: prefix,
		root:   root,
		create: func(ctx context.Context, name string) (io.WriteCloser, error) {
			w := b.Object(name).NewWriter(ctx)
			w.ContentType = "image/png"
			return w, nil
		},
		close: client.Close,
	}, nil
}

// ObjectName returns the object name for file under root.
func ObjectName(prefix, root, file string) (string, error) {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return "", err
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is not under %s", file, root)
	}
	return path.Join(prefix, filepath.ToSlash(rel)), nil
}

// Record uploads the chart written for r.
func (p *Publisher) Record(ctx context.Context, r *benchplot.Result) error {
	name, err := ObjectName(p.prefix, p.root, r.Output)
	if err != nil {
		return err
	}
	f, err := os.Open(r.Output)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := p.create(ctx, name)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Close releases the storage client.
func (p *Publisher) Close() error {
	if p.close == nil {
		return nil
	}
	return p.close()
}

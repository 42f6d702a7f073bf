// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resultswalk finds benchmark CSV files in "results"
// directories.
package resultswalk

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DirName is the name of a directory whose CSV files are visited.
const DirName = "results"

// State is the traversal state of one directory. It is derived from
// that directory's own name only, never from its ancestors.
type State struct {
	// InResults reports whether the directory is named DirName,
	// so that the files directly inside it are results.
	InResults bool
}

// StateOf returns the State of directory dir.
func StateOf(dir string) State {
	return State{InResults: filepath.Base(dir) == DirName}
}

// Wants reports whether a file named name in a directory with state s
// should be visited. A name that is nothing but ".csv" has no
// extension.
func (s State) Wants(name string) bool {
	ext := filepath.Ext(name)
	return s.InResults && ext != name && strings.EqualFold(ext, ".csv")
}

// Walk visits the tree rooted at dir in lexical order and calls fn
// for every file with a ".csv" extension (in any case) whose
// immediate parent is named exactly "results". Directories are always
// descended into, including ones below a results directory, but only
// CSV files directly inside a results directory are visited:
// results/a.csv is, results/sub/b.csv is not, results/results/c.csv
// is.
//
// Symbolic links to directories are followed, except links back to a
// directory that is already being walked.
//
// If fn returns an error, Walk stops and returns it.
func Walk(dir string, fn func(path string) error) error {
	w := &walker{fn: fn, active: make(map[string]bool)}
	return w.walk(dir, StateOf(dir))
}

type walker struct {
	fn func(path string) error
	// active holds the resolved paths of the directories on the
	// current descent.
	active map[string]bool
}

func (w *walker) walk(dir string, s State) error {
	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return err
	}
	if w.active[real] {
		return nil
	}
	w.active[real] = true
	defer delete(w.active, real)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if isDir(path, e) {
			if err := w.walk(path, StateOf(path)); err != nil {
				return err
			}
			continue
		}
		if s.Wants(e.Name()) {
			if err := w.fn(path); err != nil {
				return err
			}
		}
	}
	return nil
}

// isDir reports whether e is a directory or a link to one. A dangling
// link is not.
func isDir(path string, e fs.DirEntry) bool {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.IsDir()
	}
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

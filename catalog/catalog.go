// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package catalog records the charts produced by benchplot runs in a
// SQL database.
package catalog

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/perfuptodate/benchplot/benchplot"
)

// DB is a catalog backed by a SQL database. It's safe for concurrent
// use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRun   *sql.Stmt
	insertChart *sql.Stmt
	countRuns   *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to configure its connections.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID VARCHAR(36) PRIMARY KEY,
	Root VARCHAR(4096),
	Started VARCHAR(64)
);
CREATE TABLE IF NOT EXISTS Charts (
	ChartID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	RunID VARCHAR(36),
	Source VARCHAR(4096),
	Output VARCHAR(4096),
	Mode VARCHAR(16),
	SweepColumn VARCHAR(255),
	Unit VARCHAR(255),
	Series INTEGER,
	NumRows INTEGER,
{{if not .sqlite3}}
	Index (RunID),
{{end}}
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS ChartsRunID ON Charts(RunID);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(RunID, Root, Started) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertChart, err = db.sql.Prepare("INSERT INTO Charts(RunID, Source, Output, Mode, SweepColumn, Unit, Series, NumRows) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.countRuns, err = db.sql.Prepare("SELECT COUNT(*) FROM Runs")
	if err != nil {
		return err
	}
	return nil
}

// now is overridden by tests.
var now = time.Now

// A Run is one pass of benchplot over a directory tree. It is a
// benchplot.Sink.
type Run struct {
	// ID is a random UUID identifying the run.
	ID      string
	Root    string
	Started time.Time

	db *DB
}

var _ benchplot.Sink = (*Run)(nil)

// NewRun records the start of a run over root.
func (db *DB) NewRun(ctx context.Context, root string) (*Run, error) {
	r := &Run{
		ID:      uuid.New().String(),
		Root:    root,
		Started: now().UTC().Truncate(time.Second),
		db:      db,
	}
	if _, err := db.insertRun.ExecContext(ctx, r.ID, r.Root, r.Started.Format(time.RFC3339)); err != nil {
		return nil, err
	}
	return r, nil
}

// Record adds the chart described by res to the run.
func (r *Run) Record(ctx context.Context, res *benchplot.Result) error {
	_, err := r.db.insertChart.ExecContext(ctx, r.ID, res.Source, res.Output,
		res.Mode.String(), res.SweepColumn, res.Unit, res.Series, res.Rows)
	return err
}

// A Chart is one recorded chart.
type Chart struct {
	RunID       string
	Source      string
	Output      string
	Mode        string
	SweepColumn string
	Unit        string
	Series      int
	Rows        int
}

// Charts returns the charts recorded for run runID, in the order
// they were recorded.
func (db *DB) Charts(ctx context.Context, runID string) ([]Chart, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT RunID, Source, Output, Mode, SweepColumn, Unit, Series, NumRows FROM Charts WHERE RunID = ? ORDER BY ChartID", runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var charts []Chart
	for rows.Next() {
		var c Chart
		if err := rows.Scan(&c.RunID, &c.Source, &c.Output, &c.Mode, &c.SweepColumn, &c.Unit, &c.Series, &c.Rows); err != nil {
			return nil, err
		}
		charts = append(charts, c)
	}
	return charts, rows.Err()
}

// RunStarted returns the start time of run runID.
func (db *DB) RunStarted(ctx context.Context, runID string) (time.Time, error) {
	var s string
	if err := db.sql.QueryRowContext(ctx, "SELECT Started FROM Runs WHERE RunID = ?", runID).Scan(&s); err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, s)
}

// CountRuns returns the number of runs recorded.
func (db *DB) CountRuns() (int, error) {
	var n int
	err := db.countRuns.QueryRow().Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertRun, db.insertChart, db.countRuns} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}

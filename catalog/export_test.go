// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import (
	"database/sql"
	"time"
)

// SetNow sets the time returned by now. A zero t restores time.Now.
func SetNow(t time.Time) {
	if t.IsZero() {
		now = time.Now
		return
	}
	now = func() time.Time { return t }
}

func DBSQL(db *DB) *sql.DB {
	return db.sql
}

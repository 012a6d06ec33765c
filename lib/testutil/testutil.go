// Package testutil holds setup shared by package tests.
package testutil

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	configlibsql "storygraph-backend/lib/configutil/libsql"
)

type DBParams struct {
	// Schema is executed once the database is open, it is skipped if empty.
	Schema string
	// Path defaults to `:memory:`.
	Path string
}

// OpenDB opens a sqlite database for the duration of the test.
func OpenDB(t testing.TB, params DBParams) *sql.DB {
	path := params.Path
	if path == "" {
		path = ":memory:"
	}

	db, err := configlibsql.Struct{File: path}.OpenDB()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	if params.Schema != "" {
		_, err = db.ExecContext(context.Background(), params.Schema)
		if err != nil && !strings.Contains(err.Error(), "already exists") {
			t.Fatal(err)
		}
	}
	return db
}

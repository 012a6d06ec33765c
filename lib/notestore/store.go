// Package notestore is a reconcile.Store over a SQL database, a local sqlite
// file or a remote libsql server.
package notestore

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"storygraph-backend/internal/reconcile"
	"time"

	"github.com/google/uuid"
)

//go:embed schema.sql
var Schema string

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

// Migrate creates the note table if it does not exist yet.
func (s Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, Schema)
	if err != nil {
		return fmt.Errorf("migrate note store: %w", err)
	}
	return nil
}

const selectNote = `select id, book_title, author, date, progress, book_id, status, note, created_at from note`

func scanNotes(rows *sql.Rows) ([]reconcile.Record, error) {
	defer rows.Close()

	var records []reconcile.Record
	for rows.Next() {
		var r reconcile.Record
		var progress sql.NullFloat64
		var note sql.NullString
		var createdAt int64
		err := rows.Scan(
			&r.Id, &r.BookTitle, &r.Author, &r.Date,
			&progress, &r.BookId, &r.Status, &note, &createdAt,
		)
		if err != nil {
			return nil, err
		}
		if progress.Valid {
			r.Progress = &progress.Float64
		}
		if note.Valid {
			r.Note = &note.String
		}
		r.CreatedAt = time.Unix(createdAt, 0)
		records = append(records, r)
	}
	return records, rows.Err()
}

// Query matches on the full identity, "is" makes a null progress match only
// null.
func (s Store) Query(ctx context.Context, filter reconcile.Filter) ([]reconcile.Record, error) {
	var progress sql.NullFloat64
	if filter.Progress != nil {
		progress = sql.NullFloat64{Float64: *filter.Progress, Valid: true}
	}

	rows, err := s.db.QueryContext(
		ctx,
		selectNote+` where book_title = ? and author = ? and date = ? and progress is ?
		order by created_at, rowid`,
		filter.BookTitle, filter.Author, filter.Date, progress,
	)
	if err != nil {
		return nil, err
	}
	return scanNotes(rows)
}

func (s Store) Create(ctx context.Context, record reconcile.Record) (reconcile.Record, error) {
	record.Id = uuid.NewString()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	var progress sql.NullFloat64
	if record.Progress != nil {
		progress = sql.NullFloat64{Float64: *record.Progress, Valid: true}
	}
	var note sql.NullString
	if record.Note != nil {
		note = sql.NullString{String: *record.Note, Valid: true}
	}

	_, err := s.db.ExecContext(
		ctx,
		`insert into note(id, book_title, author, date, progress, book_id, status, note, created_at)
		values (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.Id, record.BookTitle, record.Author, record.Date,
		progress, record.BookId, record.Status, note, record.CreatedAt.Unix(),
	)
	if err != nil {
		return reconcile.Record{}, err
	}
	record.CreatedAt = time.Unix(record.CreatedAt.Unix(), 0)
	return record, nil
}

// List returns every note, oldest first.
func (s Store) List(ctx context.Context) ([]reconcile.Record, error) {
	rows, err := s.db.QueryContext(ctx, selectNote+` order by created_at, rowid`)
	if err != nil {
		return nil, err
	}
	return scanNotes(rows)
}

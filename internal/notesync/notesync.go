// Package notesync copies the user's journal history into the note store.
package notesync

import (
	"context"
	"fmt"
	"storygraph-backend/internal/components/assert"
	"storygraph-backend/internal/components/telemetry"
	"storygraph-backend/internal/journal"
	"storygraph-backend/internal/reconcile"
	"storygraph-backend/internal/scrapers/storygraph"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("storygraph-backend/internal/notesync")
var meter = otel.Meter("storygraph-backend/internal/notesync")
var outcomeCounter, _ = meter.Int64Counter("notesync.entries")

const (
	report_syncer_history   = "syncer.history"
	report_syncer_undated   = "syncer.undated"
	report_syncer_author    = "syncer.author"
	report_syncer_reconcile = "syncer.reconcile"
	report_syncer_run       = "syncer.run"

	report_count_created        = "syncer.created"
	report_count_already_exists = "syncer.already-exists"
	report_count_skipped        = "syncer.skipped"
)

// BookSource looks up a book's metadata, only the authors are used.
type BookSource interface {
	BookDetail(ctx context.Context, bookId string) (storygraph.Book, error)
}

type Reconciler interface {
	Reconcile(ctx context.Context, c reconcile.Candidate) (reconcile.Outcome, error)
}

type Summary struct {
	Created       int `json:"created"`
	AlreadyExists int `json:"already_exists"`
	Skipped       int `json:"skipped"`
}

type Syncer struct {
	history    storygraph.JournalSource
	books      BookSource
	reconciler Reconciler
	tel        telemetry.API
}

func NewSyncer(
	history storygraph.JournalSource,
	books BookSource,
	reconciler Reconciler,
	tel telemetry.API,
) Syncer {
	assert.NotNil(history)
	assert.NotNil(books)
	assert.NotNil(reconciler)
	assert.NotNil(tel)
	return Syncer{
		history:    history,
		books:      books,
		reconciler: reconciler,
		tel:        telemetry.NewScopedAPI("notesync", tel),
	}
}

// authorLookup memoizes author display strings for the length of one run.
type authorLookup struct {
	books   BookSource
	authors map[string]string
}

func (l authorLookup) author(ctx context.Context, bookId string) (string, error) {
	if author, ok := l.authors[bookId]; ok {
		return author, nil
	}
	book, err := l.books.BookDetail(ctx, bookId)
	if err != nil {
		return "", err
	}
	author := strings.Join(book.Authors, ", ")
	l.authors[bookId] = author
	return author, nil
}

// Run reconciles every dated entry of the journal, in history order. Entries
// without a usable date are skipped. A failed author lookup or store call
// aborts the run.
func (s Syncer) Run(ctx context.Context) (Summary, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	summary, err := s.run(ctx)
	span.SetAttributes(
		attribute.Int("created", summary.Created),
		attribute.Int("already_exists", summary.AlreadyExists),
		attribute.Int("skipped", summary.Skipped),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	s.tel.ReportCount(report_count_created, int64(summary.Created))
	s.tel.ReportCount(report_count_already_exists, int64(summary.AlreadyExists))
	s.tel.ReportCount(report_count_skipped, int64(summary.Skipped))
	return summary, err
}

func (s Syncer) run(ctx context.Context) (Summary, error) {
	var summary Summary

	entries, err := s.history.History(ctx)
	if err != nil {
		s.tel.ReportBroken(report_syncer_history, err)
		return summary, fmt.Errorf("journal history: %w", err)
	}

	lookup := authorLookup{books: s.books, authors: make(map[string]string)}
	for _, entry := range entries {
		if _, ok := journal.CanonicalDate(entry.Date); !ok {
			s.tel.ReportWarning(report_syncer_undated, entry.BookTitle, entry.Date)
			summary.Skipped++
			countOutcome(ctx, "skipped")
			continue
		}

		author, err := lookup.author(ctx, entry.BookId)
		if err != nil {
			s.tel.ReportBroken(report_syncer_author, err, entry.BookId)
			return summary, fmt.Errorf("author of '%s': %w", entry.BookTitle, err)
		}

		outcome, err := s.reconciler.Reconcile(ctx, reconcile.CandidateFromEntry(entry, author))
		if err != nil {
			s.tel.ReportBroken(report_syncer_reconcile, err, entry.BookTitle, entry.Date)
			return summary, fmt.Errorf("reconcile '%s' on %s: %w", entry.BookTitle, entry.Date, err)
		}
		switch outcome {
		case reconcile.OUTCOME_CREATED:
			summary.Created++
		case reconcile.OUTCOME_ALREADY_EXISTS:
			summary.AlreadyExists++
		}
		countOutcome(ctx, outcome.String())
	}
	return summary, nil
}

func countOutcome(ctx context.Context, outcome string) {
	outcomeCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RunEvery runs a sync immediately and then once every interval until ctx is
// done. Failed runs are reported and do not stop the loop. onRun, if given,
// is called after every run.
func (s Syncer) RunEvery(ctx context.Context, interval time.Duration, onRun func(Summary, error)) error {
	if interval <= 0 {
		return fmt.Errorf("sync interval must be positive, got %s", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		summary, err := s.Run(ctx)
		if err != nil {
			s.tel.ReportWarning(report_syncer_run, err)
		}
		if onRun != nil {
			onRun(summary, err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

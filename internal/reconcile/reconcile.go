// Package reconcile keeps an external note store in sync with journal entries
// so that every reading session is written exactly once.
//
// The store has no uniqueness constraint on the fields that identify a
// session, so the Reconciler queries before it creates. The two steps are not
// atomic: two processes reconciling the same entry at the same time can both
// see no match and both create. Closing that gap needs either a conditional
// create on the store or per-key serialization of Reconcile calls, neither of
// which is done here.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"math"
	"storygraph-backend/internal/components/assert"
	"storygraph-backend/internal/components/telemetry"
	"storygraph-backend/internal/journal"
	"time"
)

const (
	report_reconciler_query  = "reconciler.query"
	report_reconciler_create = "reconciler.create"
)

// Record is a note as kept by the store. BookTitle, Author, Date and Progress
// form its identity.
type Record struct {
	Id        string    `json:"id"`
	BookTitle string    `json:"book_title"`
	Author    string    `json:"author"`
	Date      string    `json:"date"`
	Progress  *float64  `json:"progress"`
	BookId    string    `json:"book_id"`
	Status    string    `json:"status"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// Filter selects records by exact match on every field, a nil Progress only
// matches records without progress.
type Filter struct {
	BookTitle string
	Author    string
	Date      string
	Progress  *float64
}

// Matches reports whether r has exactly the identity the filter asks for.
func (f Filter) Matches(r Record) bool {
	if r.BookTitle != f.BookTitle || r.Author != f.Author || r.Date != f.Date {
		return false
	}
	if f.Progress == nil || r.Progress == nil {
		return f.Progress == nil && r.Progress == nil
	}
	return *f.Progress == *r.Progress
}

// Store is the external note store. Query returns matching records in the
// store's own order, Create returns the record as stored.
type Store interface {
	Query(ctx context.Context, filter Filter) ([]Record, error)
	Create(ctx context.Context, record Record) (Record, error)
}

// Candidate is a journal entry about to be reconciled. Date may be in the
// site's display format or already canonical.
type Candidate struct {
	BookTitle string
	Author    string
	Date      string
	Progress  *float64
	BookId    string
	Status    string
	Note      *string
}

// CandidateFromEntry builds a candidate out of a normalized journal entry
// and the book's author display string.
func CandidateFromEntry(entry journal.Entry, author string) Candidate {
	var progress *float64
	if entry.ProgressPercent != nil {
		p := float64(*entry.ProgressPercent)
		progress = &p
	}
	return Candidate{
		BookTitle: entry.BookTitle,
		Author:    author,
		Date:      entry.Date,
		Progress:  progress,
		BookId:    entry.BookId,
		Status:    entry.Status.String(),
		Note:      entry.Note,
	}
}

type Outcome int

const (
	OUTCOME_CREATED Outcome = iota
	OUTCOME_ALREADY_EXISTS
)

func (o Outcome) String() string {
	switch o {
	case OUTCOME_CREATED:
		return "created"
	case OUTCOME_ALREADY_EXISTS:
		return "already_exists"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

var ErrUndated = errors.New("entry has no usable date")

// RoundProgress rounds progress to 2 decimal places, the precision the
// identity key compares at.
func RoundProgress(progress *float64) *float64 {
	if progress == nil {
		return nil
	}
	rounded := math.Round(*progress*100) / 100
	return &rounded
}

// CanonicalDate accepts a date that is already YYYY-MM-DD or one in the
// site's display format.
func CanonicalDate(date string) (string, error) {
	if _, err := time.Parse(time.DateOnly, date); err == nil {
		return date, nil
	}
	canonical, ok := journal.CanonicalDate(date)
	if !ok {
		return "", fmt.Errorf("%w: '%s'", ErrUndated, date)
	}
	return canonical, nil
}

type Reconciler struct {
	store Store
	tel   telemetry.API
	now   func() time.Time
}

func NewReconciler(store Store, tel telemetry.API) Reconciler {
	assert.NotNil(store)
	assert.NotNil(tel)
	return Reconciler{
		store: store,
		tel:   telemetry.NewScopedAPI("reconcile", tel),
		now:   time.Now,
	}
}

// Key is the identity of c as the store would see it.
func (c Candidate) Key() (Filter, error) {
	date, err := CanonicalDate(c.Date)
	if err != nil {
		return Filter{}, err
	}
	return Filter{
		BookTitle: c.BookTitle,
		Author:    c.Author,
		Date:      date,
		Progress:  RoundProgress(c.Progress),
	}, nil
}

// Reconcile creates a record for c unless one with the same identity already
// exists. It never updates or deletes.
func (r Reconciler) Reconcile(ctx context.Context, c Candidate) (Outcome, error) {
	key, err := c.Key()
	if err != nil {
		return 0, err
	}

	existing, err := r.store.Query(ctx, key)
	if err != nil {
		r.tel.ReportBroken(report_reconciler_query, err, key.BookTitle, key.Date)
		return 0, fmt.Errorf("query store: %w", err)
	}
	for _, record := range existing {
		if key.Matches(record) {
			return OUTCOME_ALREADY_EXISTS, nil
		}
	}

	_, err = r.store.Create(ctx, Record{
		BookTitle: key.BookTitle,
		Author:    key.Author,
		Date:      key.Date,
		Progress:  key.Progress,
		BookId:    c.BookId,
		Status:    c.Status,
		Note:      c.Note,
		CreatedAt: r.now(),
	})
	if err != nil {
		r.tel.ReportBroken(report_reconciler_create, err, key.BookTitle, key.Date)
		return 0, fmt.Errorf("create record: %w", err)
	}
	r.tel.ReportDebug("created record", key.BookTitle, key.Date)
	return OUTCOME_CREATED, nil
}

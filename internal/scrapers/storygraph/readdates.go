package storygraph

import (
	"context"
	"storygraph-backend/internal/components/assert"
	"storygraph-backend/internal/components/telemetry"
	"storygraph-backend/internal/journal"
)

const (
	report_read_dates_journal   = "read-dates.journal"
	report_read_dates_edit_form = "read-dates.edit-form"
)

// JournalSource provides the user's full normalized journal history.
type JournalSource interface {
	History(ctx context.Context) ([]journal.Entry, error)
}

// EditFormSource provides the dates form of a book's read instance or journal
// entry.
type EditFormSource interface {
	EditLink(ctx context.Context, bookId string) (*EditLink, error)
	EditForm(ctx context.Context, bookId string, link EditLink) (ReadDates, error)
}

// ReadDateResolver finds when the user started and finished a book. The
// journal is authoritative, the edit form is only read when the journal
// could not be retrieved.
type ReadDateResolver struct {
	journal JournalSource
	forms   EditFormSource
	tel     telemetry.API
}

func NewReadDateResolver(history JournalSource, forms EditFormSource, tel telemetry.API) ReadDateResolver {
	assert.NotNil(history)
	assert.NotNil(forms)
	assert.NotNil(tel)
	return ReadDateResolver{journal: history, forms: forms, tel: tel}
}

func (r ReadDateResolver) Resolve(ctx context.Context, bookId string) (ReadDates, error) {
	entries, err := r.journal.History(ctx)
	if err == nil {
		return readDatesFromJournal(entries, bookId), nil
	}
	r.tel.ReportWarning(report_read_dates_journal, err, bookId)

	link, err := r.forms.EditLink(ctx, bookId)
	if err != nil {
		return ReadDates{}, err
	}
	if link == nil {
		return ReadDates{}, nil
	}

	dates, err := r.forms.EditForm(ctx, bookId, *link)
	if err != nil {
		r.tel.ReportWarning(report_read_dates_edit_form, err, bookId)
		return ReadDates{}, nil
	}
	return dates, nil
}

// readDatesFromJournal takes the first started and first finished entry of
// the book. History is listed newest first, so these are the most recent
// read. A date that does not canonicalize leaves its side null.
func readDatesFromJournal(entries []journal.Entry, bookId string) ReadDates {
	var dates ReadDates
	var startSeen, finishSeen bool
	for _, e := range entries {
		if e.BookId != bookId {
			continue
		}
		switch {
		case e.Status == journal.StatusStartedReading && !startSeen:
			startSeen = true
			dates.StartDate = journal.CanonicalDatePtr(e.Date)
		case e.Status == journal.StatusFinished && !finishSeen:
			finishSeen = true
			dates.FinishDate = journal.CanonicalDatePtr(e.Date)
		}
	}
	return dates
}

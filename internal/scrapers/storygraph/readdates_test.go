package storygraph

import (
	"context"
	"errors"
	"testing"

	"storygraph-backend/internal/components/telemetry"
	"storygraph-backend/internal/journal"

	"github.com/stretchr/testify/require"
)

type fakeJournal struct {
	entries []journal.Entry
	err     error
}

func (f fakeJournal) History(context.Context) ([]journal.Entry, error) {
	return f.entries, f.err
}

type fakeForms struct {
	link     *EditLink
	linkErr  error
	dates    ReadDates
	formErr  error
	formSeen *EditLink
}

func (f *fakeForms) EditLink(context.Context, string) (*EditLink, error) {
	return f.link, f.linkErr
}

func (f *fakeForms) EditForm(_ context.Context, _ string, link EditLink) (ReadDates, error) {
	f.formSeen = &link
	return f.dates, f.formErr
}

func entry(bookId, date string, status journal.Status) journal.Entry {
	return journal.Entry{BookId: bookId, Date: date, Status: status}
}

func TestReadDatesFromJournal(t *testing.T) {
	history := []journal.Entry{
		entry("other", "1 January 2024", journal.StatusFinished),
		entry("dune", "12 June 2024", journal.StatusFinished),
		entry("dune", "3 June 2024", journal.StatusOther),
		entry("dune", "1 May 2024", journal.StatusStartedReading),
		entry("dune", "1 May 2020", journal.StatusFinished),
		entry("dune", "2 April 2020", journal.StatusStartedReading),
	}
	forms := &fakeForms{}
	resolver := NewReadDateResolver(fakeJournal{entries: history}, forms, &telemetry.Recorder{})

	dates, err := resolver.Resolve(context.Background(), "dune")
	require.NoError(t, err)
	require.Equal(t, ReadDates{
		StartDate:  strPtr("2024-05-01"),
		FinishDate: strPtr("2024-06-12"),
	}, dates)
	require.Nil(t, forms.formSeen)

	dates, err = resolver.Resolve(context.Background(), "unread")
	require.NoError(t, err)
	require.Equal(t, ReadDates{}, dates)
}

func TestReadDatesUndatedEntryIsNull(t *testing.T) {
	history := []journal.Entry{
		entry("dune", "No date", journal.StatusFinished),
		entry("dune", "1 May 2024", journal.StatusStartedReading),
		entry("dune", "1 May 2020", journal.StatusFinished),
	}
	resolver := NewReadDateResolver(fakeJournal{entries: history}, &fakeForms{}, &telemetry.Recorder{})

	dates, err := resolver.Resolve(context.Background(), "dune")
	require.NoError(t, err)
	require.Equal(t, ReadDates{StartDate: strPtr("2024-05-01")}, dates)
}

func TestReadDatesFallback(t *testing.T) {
	journalErr := &RequestError{Err: errors.New("journal unavailable")}

	t.Run("edit form", func(t *testing.T) {
		recorder := &telemetry.Recorder{}
		forms := &fakeForms{
			link:  &EditLink{Kind: EDIT_JOURNAL_ENTRY, Id: "7"},
			dates: ReadDates{StartDate: strPtr("2023-01-09"), FinishDate: strPtr("2023-02-28")},
		}
		resolver := NewReadDateResolver(fakeJournal{err: journalErr}, forms, recorder)

		dates, err := resolver.Resolve(context.Background(), "dune")
		require.NoError(t, err)
		require.Equal(t, forms.dates, dates)
		require.Equal(t, &EditLink{Kind: EDIT_JOURNAL_ENTRY, Id: "7"}, forms.formSeen)
		require.Len(t, recorder.Reports("warning"), 1)
	})

	t.Run("no edit link", func(t *testing.T) {
		resolver := NewReadDateResolver(fakeJournal{err: journalErr}, &fakeForms{}, &telemetry.Recorder{})
		dates, err := resolver.Resolve(context.Background(), "dune")
		require.NoError(t, err)
		require.Equal(t, ReadDates{}, dates)
	})

	t.Run("form fetch fails", func(t *testing.T) {
		forms := &fakeForms{
			link:    &EditLink{Kind: EDIT_READ_INSTANCE, Id: "42"},
			formErr: &RequestError{Err: errors.New("500")},
		}
		resolver := NewReadDateResolver(fakeJournal{err: journalErr}, forms, &telemetry.Recorder{})
		dates, err := resolver.Resolve(context.Background(), "dune")
		require.NoError(t, err)
		require.Equal(t, ReadDates{}, dates)
	})

	t.Run("empty id", func(t *testing.T) {
		forms := &fakeForms{linkErr: missingLandmark(KIND_EDIT_LINK, "read_instance_id")}
		resolver := NewReadDateResolver(fakeJournal{err: journalErr}, forms, &telemetry.Recorder{})
		_, err := resolver.Resolve(context.Background(), "dune")
		requireParsingError(t, err)
	})
}

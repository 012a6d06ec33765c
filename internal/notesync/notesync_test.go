package notesync

import (
	"context"
	"errors"
	"testing"
	"time"

	"storygraph-backend/internal/components/telemetry"
	"storygraph-backend/internal/journal"
	"storygraph-backend/internal/reconcile"
	"storygraph-backend/internal/scrapers/storygraph"

	"github.com/stretchr/testify/require"
)

type fakeHistory struct {
	entries []journal.Entry
	err     error
}

func (f fakeHistory) History(context.Context) ([]journal.Entry, error) {
	return f.entries, f.err
}

type fakeBooks struct {
	authors map[string][]string
	calls   map[string]int
}

func (f *fakeBooks) BookDetail(_ context.Context, bookId string) (storygraph.Book, error) {
	f.calls[bookId]++
	authors, ok := f.authors[bookId]
	if !ok {
		return storygraph.Book{}, &storygraph.RequestError{Err: errors.New("404")}
	}
	return storygraph.Book{Authors: authors}, nil
}

func intPtr(n int) *int {
	return &n
}

func history() []journal.Entry {
	return []journal.Entry{
		{BookTitle: "Dune", BookId: "dune", Date: "12 June 2024", Status: journal.StatusFinished, ProgressPercent: intPtr(100)},
		{BookTitle: "Good Omens", BookId: "omens", Date: "No date", Status: journal.StatusOther},
		{BookTitle: "Dune", BookId: "dune", Date: "1 June 2024", Status: journal.StatusOther, ProgressPercent: intPtr(45)},
		{BookTitle: "Good Omens", BookId: "omens", Date: "2 May 2024", Status: journal.StatusStartedReading, ProgressPercent: intPtr(0)},
	}
}

func newBooks() *fakeBooks {
	return &fakeBooks{
		authors: map[string][]string{
			"dune":  {"Frank Herbert"},
			"omens": {"Terry Pratchett", "Neil Gaiman"},
		},
		calls: map[string]int{},
	}
}

func TestSyncRun(t *testing.T) {
	store := &reconcile.MemoryStore{}
	books := newBooks()
	recorder := &telemetry.Recorder{}
	syncer := NewSyncer(
		fakeHistory{entries: history()},
		books,
		reconcile.NewReconciler(store, recorder),
		recorder,
	)

	summary, err := syncer.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, Summary{Created: 3, Skipped: 1}, summary)
	require.Equal(t, map[string]int{"dune": 1, "omens": 1}, books.calls)
	require.Len(t, recorder.Reports("warning"), 1)

	records := store.Records()
	require.Len(t, records, 3)
	require.Equal(t, "Terry Pratchett, Neil Gaiman", records[2].Author)
	require.Equal(t, "2024-05-02", records[2].Date)

	summary, err = syncer.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, Summary{AlreadyExists: 3, Skipped: 1}, summary)
	require.Len(t, store.Records(), 3)
	require.Equal(t, map[string]int{"dune": 2, "omens": 2}, books.calls)
}

func TestSyncRunAborts(t *testing.T) {
	store := &reconcile.MemoryStore{}
	recorder := &telemetry.Recorder{}

	historyErr := &storygraph.RequestError{Err: errors.New("timeout")}
	syncer := NewSyncer(fakeHistory{err: historyErr}, newBooks(), reconcile.NewReconciler(store, recorder), recorder)
	_, err := syncer.Run(context.Background())
	require.ErrorIs(t, err, historyErr)

	entries := append(history(), journal.Entry{BookTitle: "Unknown", BookId: "missing", Date: "1 January 2024"})
	syncer = NewSyncer(fakeHistory{entries: entries}, newBooks(), reconcile.NewReconciler(store, recorder), recorder)
	summary, err := syncer.Run(context.Background())
	var requestErr *storygraph.RequestError
	require.ErrorAs(t, err, &requestErr)
	require.Equal(t, Summary{Created: 3, Skipped: 1}, summary)
}

func TestSyncRunEvery(t *testing.T) {
	store := &reconcile.MemoryStore{}
	recorder := &telemetry.Recorder{}
	syncer := NewSyncer(fakeHistory{entries: history()}, newBooks(), reconcile.NewReconciler(store, recorder), recorder)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var summaries []Summary
	err := syncer.RunEvery(ctx, time.Millisecond, func(summary Summary, err error) {
		require.NoError(t, err)
		summaries = append(summaries, summary)
		if len(summaries) == 2 {
			cancel()
		}
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, []Summary{
		{Created: 3, Skipped: 1},
		{AlreadyExists: 3, Skipped: 1},
	}, summaries)

	require.Error(t, syncer.RunEvery(context.Background(), 0, nil))
}

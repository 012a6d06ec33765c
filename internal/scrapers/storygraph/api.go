package storygraph

import (
	"context"
	"storygraph-backend/internal/journal"
)

// API is the outer surface of the scraper. Every method returns the result
// as indented JSON, or {"error": "<message>"} if anything went wrong, and
// never panics.
type API struct {
	scraper  *Scraper
	resolver ReadDateResolver
}

func NewAPI(scraper *Scraper, resolver ReadDateResolver) API {
	return API{scraper: scraper, resolver: resolver}
}

// NewDefaultAPI wires an API whose read-date resolver uses the scraper for
// both the journal and the edit form.
func NewDefaultAPI(scraper *Scraper) API {
	return NewAPI(scraper, NewReadDateResolver(scraper, scraper, scraper.tel))
}

func (a API) BookInfo(ctx context.Context, bookId string) string {
	return Envelope(func() (Book, error) {
		return a.scraper.BookInfo(ctx, bookId)
	})
}

func (a API) ReadingProgress(ctx context.Context, bookId string) string {
	return Envelope(func() (Progress, error) {
		return a.scraper.ReadingProgress(ctx, bookId)
	})
}

func (a API) ReadDates(ctx context.Context, bookId string) string {
	return Envelope(func() (ReadDates, error) {
		return a.resolver.Resolve(ctx, bookId)
	})
}

func (a API) AISummary(ctx context.Context, bookId, userId string) string {
	return Envelope(func() (Summary, error) {
		return a.scraper.AISummary(ctx, bookId, userId)
	})
}

func (a API) JournalEntries(ctx context.Context, bookId string) string {
	return Envelope(func() ([]journal.Entry, error) {
		return a.scraper.BookJournal(ctx, bookId)
	})
}

func (a API) Search(ctx context.Context, query string) string {
	return Envelope(func() ([]SearchResult, error) {
		return a.scraper.Search(ctx, query)
	})
}

func (a API) UserID(ctx context.Context, username string) string {
	return Envelope(func() (UserId, error) {
		return a.scraper.UserId(ctx, username)
	})
}

func (a API) CurrentlyReading(ctx context.Context, username string) string {
	return a.list(ctx, LIST_CURRENTLY_READING, username)
}

func (a API) ToRead(ctx context.Context, username string) string {
	return a.list(ctx, LIST_TO_READ, username)
}

func (a API) BooksRead(ctx context.Context, username string) string {
	return a.list(ctx, LIST_READ, username)
}

func (a API) list(ctx context.Context, list UserList, username string) string {
	return Envelope(func() ([]ListedBook, error) {
		return a.scraper.List(ctx, list, username)
	})
}

func (a API) AllJournalEntries(ctx context.Context) string {
	return Envelope(func() ([]journal.Entry, error) {
		return a.scraper.History(ctx)
	})
}

package storygraph

import (
	"context"
	"fmt"
	"net/url"
	"storygraph-backend/internal/components/assert"
	"storygraph-backend/internal/components/telemetry"
	"storygraph-backend/internal/journal"
	"strconv"
)

const (
	report_scraper_book_info        = "scraper.book-info"
	report_scraper_reading_progress = "scraper.reading-progress"
	report_scraper_ai_summary       = "scraper.ai-summary"
	report_scraper_book_journal     = "scraper.book-journal"
	report_scraper_search           = "scraper.search"
	report_scraper_user_id          = "scraper.user-id"
	report_scraper_user_list        = "scraper.user-list"
	report_scraper_history          = "scraper.history"
	report_scraper_edit_link        = "scraper.edit-link"
	report_scraper_edit_form        = "scraper.edit-form"
)

// Scraper ties the fetcher to the extractors, one method per page (or
// paginated list of pages) of the site.
type Scraper struct {
	fetcher Fetcher
	crawl   CrawlOptions
	tel     telemetry.API
}

func NewScraper(fetcher Fetcher, crawl CrawlOptions, tel telemetry.API) *Scraper {
	assert.NotNil(fetcher)
	assert.NotNil(tel)
	assert.NonNegative(crawl.MaxPages)
	return &Scraper{
		fetcher: fetcher,
		crawl:   crawl,
		tel:     telemetry.NewScopedAPI("storygraph", tel),
	}
}

// fetchAs fetches a page and runs the extractor for kind over it, broken
// landmarks are reported under id.
func fetchAs[T any](ctx context.Context, s *Scraper, id string, kind PageKind, path string, query url.Values) (T, error) {
	var zero T
	content, err := s.fetcher.Get(ctx, path, query)
	if err != nil {
		return zero, err
	}
	value, err := extractAs[T](kind, content)
	if err != nil {
		s.tel.ReportBroken(id, err, path)
		return zero, err
	}
	return value, nil
}

func bookPath(bookId string) string {
	return fmt.Sprintf("/books/%s", url.PathEscape(bookId))
}

// BookDetail fetches only the book page, without ratings or warnings.
func (s *Scraper) BookDetail(ctx context.Context, bookId string) (Book, error) {
	return fetchAs[Book](ctx, s, report_scraper_book_info, KIND_BOOK_DETAIL, bookPath(bookId), nil)
}

// BookInfo combines the book page with its community reviews and content
// warnings pages.
func (s *Scraper) BookInfo(ctx context.Context, bookId string) (Book, error) {
	book, err := s.BookDetail(ctx, bookId)
	if err != nil {
		return Book{}, err
	}

	rating, err := fetchAs[string](
		ctx, s, report_scraper_book_info,
		KIND_COMMUNITY_REVIEWS, bookPath(bookId)+"/community_reviews", nil,
	)
	if err != nil {
		return Book{}, err
	}
	book.AverageRating = rating

	warnings, err := fetchAs[Warnings](
		ctx, s, report_scraper_book_info,
		KIND_CONTENT_WARNINGS, bookPath(bookId)+"/content_warnings", nil,
	)
	if err != nil {
		return Book{}, err
	}
	book.Warnings = warnings

	return book, nil
}

// ReadingProgress reads the progress shown on the authenticated book page.
func (s *Scraper) ReadingProgress(ctx context.Context, bookId string) (Progress, error) {
	return fetchAs[Progress](ctx, s, report_scraper_reading_progress, KIND_READING_STATUS, bookPath(bookId), nil)
}

func (s *Scraper) AISummary(ctx context.Context, bookId, userId string) (Summary, error) {
	return fetchAs[Summary](
		ctx, s, report_scraper_ai_summary,
		KIND_SUMMARY, "/personalized-preview.turbo_stream",
		url.Values{
			"book_id":      {bookId},
			"personalized": {"false"},
			"user_id":      {userId},
		},
	)
}

// BookJournal returns the normalized journal entries of a single book.
func (s *Scraper) BookJournal(ctx context.Context, bookId string) ([]journal.Entry, error) {
	raw, err := fetchAs[[]journal.RawEntry](
		ctx, s, report_scraper_book_journal,
		KIND_BOOK_JOURNAL, "/journal", url.Values{"book_id": {bookId}},
	)
	if err != nil {
		return nil, err
	}
	for i := range raw {
		raw[i].BookId = bookId
	}
	return journal.Normalize(raw), nil
}

func (s *Scraper) Search(ctx context.Context, query string) ([]SearchResult, error) {
	return fetchAs[[]SearchResult](
		ctx, s, report_scraper_search,
		KIND_SEARCH_RESULTS, "/browse", url.Values{"search_term": {query}},
	)
}

func (s *Scraper) UserId(ctx context.Context, username string) (UserId, error) {
	return fetchAs[UserId](
		ctx, s, report_scraper_user_id,
		KIND_PROFILE, fmt.Sprintf("/profile/%s", url.PathEscape(username)), nil,
	)
}

// List crawls every page of one of the user's shelves. Books repeated across
// pages are kept once, in first seen order.
func (s *Scraper) List(ctx context.Context, list UserList, username string) ([]ListedBook, error) {
	path := fmt.Sprintf("/%s/%s", list, url.PathEscape(username))
	books, err := Crawl(
		ctx,
		s.pageFetcher(path),
		func(content []byte) ([]ListedBook, error) {
			return extractAs[[]ListedBook](KIND_USER_LIST, content)
		},
		s.crawl,
	)
	if err != nil {
		s.tel.ReportBroken(report_scraper_user_list, err, path)
		return nil, err
	}

	seen := make(map[ListedBook]bool, len(books))
	unique := make([]ListedBook, 0, len(books))
	for _, b := range books {
		if seen[b] {
			continue
		}
		seen[b] = true
		unique = append(unique, b)
	}
	return unique, nil
}

// History crawls the user's whole journal and normalizes it as one batch.
func (s *Scraper) History(ctx context.Context) ([]journal.Entry, error) {
	raw, err := Crawl(
		ctx,
		s.pageFetcher("/journal"),
		func(content []byte) ([]journal.RawEntry, error) {
			return extractAs[[]journal.RawEntry](KIND_JOURNAL, content)
		},
		s.crawl,
	)
	if err != nil {
		s.tel.ReportBroken(report_scraper_history, err)
		return nil, err
	}
	return journal.Normalize(raw), nil
}

func (s *Scraper) pageFetcher(path string) func(ctx context.Context, page int) ([]byte, error) {
	return func(ctx context.Context, page int) ([]byte, error) {
		s.tel.ReportDebug("fetch page", path, page)
		return s.fetcher.Get(ctx, path, url.Values{"page": {strconv.Itoa(page)}})
	}
}

// EditLink finds the dates form link on the authenticated book page, nil
// when the user has no read instance or journal entry for the book.
func (s *Scraper) EditLink(ctx context.Context, bookId string) (*EditLink, error) {
	return fetchAs[*EditLink](ctx, s, report_scraper_edit_link, KIND_EDIT_LINK, bookPath(bookId), nil)
}

// EditForm posts for the dates form that link points to and reads its dates.
func (s *Scraper) EditForm(ctx context.Context, bookId string, link EditLink) (ReadDates, error) {
	path := link.Kind.formPath()
	if path == "" {
		return ReadDates{}, fmt.Errorf("edit form: unknown edit kind %d", link.Kind)
	}
	content, err := s.fetcher.Post(ctx, path, map[string]string{
		"book_id":           bookId,
		link.Kind.idParam(): link.Id,
	})
	if err != nil {
		return ReadDates{}, err
	}
	doc, err := parseDocument(KIND_EDIT_FORM, content)
	if err != nil {
		s.tel.ReportBroken(report_scraper_edit_form, err, path)
		return ReadDates{}, err
	}
	return parseEditForm(doc, link.Kind), nil
}

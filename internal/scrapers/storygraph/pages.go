package storygraph

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// PageKind identifies which extraction routine applies to a page.
type PageKind string

const (
	KIND_BOOK_DETAIL       PageKind = "book-detail"
	KIND_COMMUNITY_REVIEWS PageKind = "community-reviews"
	KIND_CONTENT_WARNINGS  PageKind = "content-warnings"
	KIND_SEARCH_RESULTS    PageKind = "search-results"
	KIND_BOOK_JOURNAL      PageKind = "book-journal"
	KIND_USER_LIST         PageKind = "user-list"
	KIND_JOURNAL           PageKind = "journal"
	KIND_READING_STATUS    PageKind = "reading-status"
	KIND_EDIT_LINK         PageKind = "edit-link"
	KIND_EDIT_FORM         PageKind = "edit-form"
	KIND_PROFILE           PageKind = "profile"
	KIND_SUMMARY           PageKind = "summary"
)

type extractor func(doc *goquery.Document) (any, error)

func adapt[T any](fn func(doc *goquery.Document) (T, error)) extractor {
	return func(doc *goquery.Document) (any, error) {
		return fn(doc)
	}
}

var extractors = map[PageKind]extractor{
	KIND_BOOK_DETAIL:       adapt(ParseBookPage),
	KIND_COMMUNITY_REVIEWS: adapt(ParseCommunityReviews),
	KIND_CONTENT_WARNINGS:  adapt(ParseContentWarnings),
	KIND_SEARCH_RESULTS:    adapt(ParseSearchResults),
	KIND_BOOK_JOURNAL:      adapt(ParseBookJournal),
	KIND_USER_LIST:         adapt(ParseUserList),
	KIND_JOURNAL:           adapt(ParseJournalPage),
	KIND_READING_STATUS:    adapt(ParseReadingProgress),
	KIND_EDIT_LINK:         adapt(ParseEditLink),
	KIND_EDIT_FORM:         adapt(ParseEditForm),
	KIND_PROFILE:           adapt(ParseProfile),
	KIND_SUMMARY:           adapt(ParseSummary),
}

// Extract runs the extraction routine registered for kind over content.
func Extract(kind PageKind, content []byte) (any, error) {
	fn, ok := extractors[kind]
	if !ok {
		return nil, fmt.Errorf("no extractor for page kind '%s'", kind)
	}
	doc, err := parseDocument(kind, content)
	if err != nil {
		return nil, err
	}
	return fn(doc)
}

// extractAs is Extract with the result type known at the call site.
func extractAs[T any](kind PageKind, content []byte) (T, error) {
	var zero T
	value, err := Extract(kind, content)
	if err != nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("extractor for '%s' returned %T", kind, value)
	}
	return typed, nil
}

func parseDocument(kind PageKind, content []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, malformedLandmark(kind, "html document", err)
	}
	return doc, nil
}

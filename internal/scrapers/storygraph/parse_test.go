package storygraph

import (
	"strings"
	"testing"

	"storygraph-backend/internal/journal"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func mustDoc(t testing.TB, content string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func strPtr(s string) *string {
	return &s
}

func intPtr(n int) *int {
	return &n
}

func requireParsingError(t testing.TB, err error) {
	var parsingErr *ParsingError
	require.ErrorAs(t, err, &parsingErr)
}

func TestParseBookPage(t *testing.T) {
	book, err := extractAs[Book](KIND_BOOK_DETAIL, []byte(bookPageHtml))
	require.NoError(t, err)

	expected := Book{
		Title:         "Dune",
		Authors:       []string{"Frank Herbert"},
		Pages:         "896",
		FirstPub:      "1965",
		Tags:          []string{"science fiction", "adventurous"},
		AverageRating: "N/A",
		Description:   "Set on the desert planet Arrakis.\nA stunning blend of adventure.",
		Warnings:      emptyWarnings(),
		CoverUrl:      strPtr("https://cdn.example.com/dune.jpg"),
	}
	if diff := cmp.Diff(expected, book); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseBookPageStructuredAuthors(t *testing.T) {
	book, err := ParseBookPage(mustDoc(t, bookPageStructuredAuthorHtml))
	require.NoError(t, err)
	require.Equal(t, []string{"Frank Herbert"}, book.Authors)
	require.Equal(t, "N/A", book.FirstPub)
	require.Equal(t, "Description not found.", book.Description)
	require.Nil(t, book.CoverUrl)
	require.Empty(t, book.Tags)
}

func TestParseBookPageRejectsUnexpectedAuthorData(t *testing.T) {
	cases := []struct {
		name   string
		author string
	}{
		{name: "unknown field", author: `{"name":"Frank Herbert","born":1920}`},
		{name: "bare string", author: `"Frank Herbert"`},
		{name: "missing name", author: `[{"@type":"Person"}]`},
		{name: "code", author: `{"name": alert(1)}`},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			page := strings.Replace(
				bookPageStructuredAuthorHtml,
				`[{"@type":"Person","name":"Frank Herbert","url":"https://example.com/frank"}]`,
				test.author,
				1,
			)
			_, err := ParseBookPage(mustDoc(t, page))
			requireParsingError(t, err)
		})
	}
}

func TestParseBookPageMissingLandmarks(t *testing.T) {
	_, err := ParseBookPage(mustDoc(t, `<html><body><p>gone</p></body></html>`))
	requireParsingError(t, err)
	require.Contains(t, err.Error(), "main title header")

	_, err = ParseBookPage(mustDoc(t, `<h3 class="font-serif font-bold text-2xl">Dune</h3>`))
	requireParsingError(t, err)
	require.Contains(t, err.Error(), "metadata paragraph")
}

func TestParseCommunityReviews(t *testing.T) {
	rating, err := ParseCommunityReviews(mustDoc(t, communityReviewsHtml))
	require.NoError(t, err)
	require.Equal(t, "4.26", rating)

	rating, err = ParseCommunityReviews(mustDoc(t, `<html></html>`))
	require.NoError(t, err)
	require.Equal(t, "N/A", rating)
}

func TestParseContentWarnings(t *testing.T) {
	warnings, err := ParseContentWarnings(mustDoc(t, contentWarningsHtml))
	require.NoError(t, err)
	require.Equal(t, Warnings{
		Graphic:  []string{"Violence", "Death"},
		Moderate: []string{"Drug use"},
		Minor:    []string{"Suicide"},
	}, warnings)

	warnings, err = ParseContentWarnings(mustDoc(t, `<div class="standard-pane"></div>`))
	require.NoError(t, err)
	require.Equal(t, emptyWarnings(), warnings)
}

func TestParseSearchResults(t *testing.T) {
	results, err := ParseSearchResults(mustDoc(t, searchResultsHtml))
	require.NoError(t, err)
	require.Equal(t, []SearchResult{
		{Title: "Dune", Author: "Frank Herbert", BookId: "abc-123"},
		{Title: "N/A", Author: "N/A", BookId: "N/A"},
	}, results)
}

func TestParseUserList(t *testing.T) {
	books, err := ParseUserList(mustDoc(t, userListHtml))
	require.NoError(t, err)
	require.Equal(t, []ListedBook{
		{Title: "Dune", BookId: "abc-123"},
		{Title: "Emma", BookId: "def-456"},
	}, books)

	_, err = ParseUserList(mustDoc(t, `<div class="book-title-author-and-series">no link</div>`))
	requireParsingError(t, err)
}

func TestParseJournalPage(t *testing.T) {
	entries, err := ParseJournalPage(mustDoc(t, journalPageHtml))
	require.NoError(t, err)

	expected := []journal.RawEntry{
		{
			BookTitle:            "Dune",
			BookId:               "abc-123",
			Date:                 "12 June 2024",
			StatusLabel:          strPtr("Finished"),
			ProgressPercent:      intPtr(100),
			PagesReadThisSession: intPtr(1200),
			TotalPagesRead:       intPtr(1200),
			TotalPages:           intPtr(1250),
			Note:                 strPtr("Loved it.\nWill reread."),
		},
		{
			BookTitle:   "Dune",
			BookId:      "abc-123",
			Date:        "1 May 2024",
			StatusLabel: strPtr("Started reading"),
		},
	}
	if diff := cmp.Diff(expected, entries); diff != "" {
		t.Fatal(diff)
	}

	entries, err = ParseJournalPage(mustDoc(t, emptyJournalPageHtml))
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestParseBookJournal(t *testing.T) {
	entries, err := ParseBookJournal(mustDoc(t, bookJournalHtml))
	require.NoError(t, err)

	expected := []journal.RawEntry{
		{
			Date:                 "9 March 2024",
			ProgressPercent:      intPtr(45),
			PagesReadThisSession: intPtr(120),
			TotalPagesRead:       intPtr(200),
			TotalPages:           intPtr(444),
		},
		{
			Date:        "3 March 2024",
			StatusLabel: strPtr("Started reading"),
		},
	}
	if diff := cmp.Diff(expected, entries); diff != "" {
		t.Fatal(diff)
	}
}

func TestParseReadingProgress(t *testing.T) {
	cases := []struct {
		name     string
		page     string
		expected string
	}{
		{
			name:     "finished",
			page:     `<button class="read-status-label">read</button>`,
			expected: "100%",
		},
		{
			name:     "progress bar",
			page:     `<button class="read-status-label">currently reading</button><div class="progress-bar"><span> 42% </span></div>`,
			expected: "42%",
		},
		{
			name:     "empty progress bar",
			page:     `<div class="progress-bar"><div style="width: 0%"></div></div>`,
			expected: "0%",
		},
		{
			name:     "to read",
			page:     `<button class="btn"> to read </button>`,
			expected: "0%",
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			progress, err := ParseReadingProgress(mustDoc(t, test.page))
			require.NoError(t, err)
			require.Equal(t, test.expected, progress.Progress)
		})
	}

	_, err := ParseReadingProgress(mustDoc(t, `<p>nothing to see</p>`))
	requireParsingError(t, err)
}

func TestParseEditLink(t *testing.T) {
	cases := []struct {
		name     string
		page     string
		expected *EditLink
		fails    bool
	}{
		{
			name:     "read instance",
			page:     `<a href="/books/b">book</a><a href="/edit-read-instance-from-book?book_id=b&read_instance_id=42">edit</a>`,
			expected: &EditLink{Kind: EDIT_READ_INSTANCE, Id: "42"},
		},
		{
			name:     "journal entry",
			page:     `<a href="/edit-journal-entry-from-book?book_id=b&journal_entry_id=7">edit</a>`,
			expected: &EditLink{Kind: EDIT_JOURNAL_ENTRY, Id: "7"},
		},
		{
			name:  "empty id",
			page:  `<a href="/edit-read-instance-from-book?book_id=b&read_instance_id=">edit</a>`,
			fails: true,
		},
		{
			name: "no link",
			page: `<a href="/books/b">book</a>`,
		},
		{
			name: "no id parameter",
			page: `<a href="/edit-read-instance-from-book?book_id=b">edit</a>`,
		},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			link, err := ParseEditLink(mustDoc(t, test.page))
			if test.fails {
				requireParsingError(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.expected, link)
		})
	}
}

func TestParseEditForm(t *testing.T) {
	dates, err := ParseEditForm(mustDoc(t, readInstanceFormHtml))
	require.NoError(t, err)
	require.Equal(t, ReadDates{StartDate: strPtr("2024-03-05")}, dates)

	dates, err = ParseEditForm(mustDoc(t, journalEntryFormHtml))
	require.NoError(t, err)
	require.Equal(t, ReadDates{
		StartDate:  strPtr("2023-01-09"),
		FinishDate: strPtr("2023-02-28"),
	}, dates)

	dates, err = ParseEditForm(mustDoc(t, `<form></form>`))
	require.NoError(t, err)
	require.Equal(t, ReadDates{}, dates)
}

func TestParseProfileAndSummary(t *testing.T) {
	userId, err := ParseProfile(mustDoc(t, profileHtml))
	require.NoError(t, err)
	require.Equal(t, "u-99", userId.UserId)

	_, err = ParseProfile(mustDoc(t, `<div id="profile-heading-pane"></div>`))
	requireParsingError(t, err)

	summary, err := ParseSummary(mustDoc(t, summaryHtml))
	require.NoError(t, err)
	require.Equal(t, "A tense desert epic you will probably love.", summary.Summary)

	_, err = ParseSummary(mustDoc(t, `<template></template>`))
	requireParsingError(t, err)
}

func TestExtractUnknownKind(t *testing.T) {
	_, err := Extract(PageKind("nonexistent"), []byte("<html></html>"))
	require.Error(t, err)
}

package storygraph

import (
	"net/url"
	"storygraph-backend/lib/htmlutil"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// lastHrefSegment returns the id at the end of an href like "/books/<id>".
func lastHrefSegment(href string) string {
	link, err := url.Parse(href)
	if err != nil {
		segments := strings.Split(href, "/")
		return segments[len(segments)-1]
	}
	return htmlutil.LastPathSegment(link)
}

// ParseUserList extracts one page of a user's shelf. A book appearing twice
// on the page is only kept once, in the position it was first seen.
func ParseUserList(doc *goquery.Document) ([]ListedBook, error) {
	books := []ListedBook{}
	seen := make(map[ListedBook]bool)

	var err error
	doc.Find("div.book-title-author-and-series").EachWithBreak(func(_ int, entry *goquery.Selection) bool {
		anchor := entry.Find("a").First()
		href, ok := anchor.Attr("href")
		if !ok {
			err = missingLandmark(KIND_USER_LIST, "the book link of a listed book")
			return false
		}

		book := ListedBook{
			Title:  strings.TrimSpace(anchor.Text()),
			BookId: lastHrefSegment(href),
		}
		if seen[book] {
			return true
		}
		seen[book] = true
		books = append(books, book)
		return true
	})
	if err != nil {
		return nil, err
	}
	return books, nil
}

// ParseProfile extracts the internal user id from a profile page.
func ParseProfile(doc *goquery.Document) (UserId, error) {
	userId := doc.Find("div#profile-heading-pane").AttrOr("data-user-id", "")
	if userId == "" {
		return UserId{}, missingLandmark(KIND_PROFILE, "data-user-id on the profile heading pane")
	}
	return UserId{UserId: userId}, nil
}

// ParseSummary extracts the AI preview text from a turbo stream response.
func ParseSummary(doc *goquery.Document) (Summary, error) {
	text := strings.TrimSpace(doc.Find("template p").First().Text())
	if text == "" {
		return Summary{}, missingLandmark(KIND_SUMMARY, "the summary paragraph")
	}
	return Summary{Summary: text}, nil
}

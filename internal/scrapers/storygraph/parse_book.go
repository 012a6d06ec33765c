package storygraph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"storygraph-backend/lib/htmlutil"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func firstTextNode(sel *goquery.Selection) (string, bool) {
	nodes := sel.Contents().Nodes
	if len(nodes) == 0 || nodes[0].Type != html.TextNode {
		return "", false
	}
	return nodes[0].Data, true
}

// ParseBookPage extracts the metadata shown on a public book page. Ratings and
// warnings live on other pages and are left empty.
func ParseBookPage(doc *goquery.Document) (Book, error) {
	header := doc.Find("h3.font-serif.font-bold.text-2xl").First()
	if header.Length() == 0 {
		return Book{}, missingLandmark(KIND_BOOK_DETAIL, "the main title header")
	}

	title := ""
	if text, ok := firstTextNode(header); ok {
		title = strings.TrimSpace(text)
	}

	authors := []string{}
	for _, a := range htmlutil.GetAnchors(nil, header.Find("a")) {
		if strings.HasPrefix(a.Url.Path, "/authors") {
			authors = append(authors, a.Name)
		}
	}
	if len(authors) == 0 {
		structured, err := parseStructuredAuthors(doc)
		if err != nil {
			return Book{}, err
		}
		authors = structured
	}

	metadata := doc.Find("p.text-sm.font-light").First()
	if metadata.Length() == 0 || metadata.Contents().Length() == 0 {
		return Book{}, missingLandmark(KIND_BOOK_DETAIL, "the book metadata paragraph")
	}

	pages := notAvailable
	if text, ok := firstTextNode(metadata); ok {
		if fields := strings.Fields(text); len(fields) > 0 {
			pages = fields[0]
		}
	}

	firstPub := notAvailable
	metadata.Find("span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
		if !strings.Contains(span.Text(), "first pub") {
			return true
		}
		fields := strings.Fields(span.Text())
		firstPub = fields[len(fields)-1]
		return false
	})

	tags := []string{}
	doc.Find("div.book-page-tag-section span").Each(func(_ int, span *goquery.Selection) {
		tags = append(tags, strings.TrimSpace(span.Text()))
	})

	var coverUrl *string
	if src, ok := doc.Find("div.book-cover img").First().Attr("src"); ok {
		coverUrl = &src
	}

	return Book{
		Title:         title,
		Authors:       authors,
		Pages:         pages,
		FirstPub:      firstPub,
		Tags:          tags,
		AverageRating: notAvailable,
		Description:   parseDescription(doc),
		Warnings:      emptyWarnings(),
		CoverUrl:      coverUrl,
	}, nil
}

var descriptionPayloadRegex = regexp.MustCompile(`(?s)\.html\('(.*)'\)`)

var jsStringUnescaper = strings.NewReplacer(
	`\\`, `\`,
	`\/`, `/`,
	`\'`, `'`,
	`\"`, `"`,
	`\n`, "\n",
)

// parseDescription digs the description out of the inline script that fills
// the "read more" pane, the page itself only renders a truncated version.
func parseDescription(doc *goquery.Document) string {
	description := descriptionNotFound
	doc.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		text := script.Text()
		if !strings.Contains(text, "$('.read-more-btn')") {
			return true
		}
		groups := descriptionPayloadRegex.FindStringSubmatch(text)
		if len(groups) < 2 {
			return false
		}

		fragment, err := goquery.NewDocumentFromReader(
			strings.NewReader(jsStringUnescaper.Replace(groups[1])),
		)
		if err != nil {
			return false
		}
		content := fragment.Find("div.trix-content").First()
		if content.Length() > 0 {
			description = htmlutil.GetTextLines(content)
		}
		return false
	})
	return description
}

type structuredAuthor struct {
	Type string `json:"@type"`
	Name string `json:"name"`
	Url  string `json:"url"`
}

// parseStructuredAuthors reads the author field of the page's JSON-LD block.
// Only an author object or an array of author objects is accepted, anything
// else in that field is treated as broken markup.
func parseStructuredAuthors(doc *goquery.Document) ([]string, error) {
	script := doc.Find(`script[type="application/ld+json"]`).First()
	if script.Length() == 0 {
		return []string{}, nil
	}

	var document struct {
		Author json.RawMessage `json:"author"`
	}
	err := json.Unmarshal([]byte(script.Text()), &document)
	if err != nil {
		return nil, malformedLandmark(KIND_BOOK_DETAIL, "structured data", err)
	}
	raw := bytes.TrimSpace(document.Author)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []string{}, nil
	}

	var entries []structuredAuthor
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if raw[0] == '[' {
		err = decoder.Decode(&entries)
	} else {
		var single structuredAuthor
		err = decoder.Decode(&single)
		entries = []structuredAuthor{single}
	}
	if err != nil {
		return nil, malformedLandmark(KIND_BOOK_DETAIL, "structured author", err)
	}

	authors := make([]string, 0, len(entries))
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, malformedLandmark(
				KIND_BOOK_DETAIL,
				"structured author",
				fmt.Errorf("author entry has no name"),
			)
		}
		authors = append(authors, name)
	}
	return authors, nil
}

// ParseCommunityReviews extracts the average star rating, "N/A" when the book
// has no ratings yet.
func ParseCommunityReviews(doc *goquery.Document) (string, error) {
	rating := doc.Find("span.average-star-rating").First()
	if rating.Length() == 0 {
		return notAvailable, nil
	}
	return strings.TrimSpace(rating.Text()), nil
}

var warningLabelRegex = regexp.MustCompile(`^(.*) \((\d+)\)$`)

// ParseContentWarnings extracts the user-submitted content warnings. The pane
// is a flat run of <p> section headers each followed by its <div> labels.
func ParseContentWarnings(doc *goquery.Document) (Warnings, error) {
	warnings := emptyWarnings()

	panes := doc.Find("div.standard-pane")
	if panes.Length() < 2 {
		return warnings, nil
	}

	section := &warnings.Graphic
	panes.Eq(1).Children().Each(func(_ int, child *goquery.Selection) {
		switch goquery.NodeName(child) {
		case "p":
			switch strings.TrimSpace(child.Text()) {
			case "Graphic":
				section = &warnings.Graphic
			case "Moderate":
				section = &warnings.Moderate
			case "Minor":
				section = &warnings.Minor
			}
		case "div":
			groups := warningLabelRegex.FindStringSubmatch(strings.TrimSpace(child.Text()))
			if len(groups) < 3 {
				return
			}
			*section = append(*section, groups[1])
		}
	})
	return warnings, nil
}

// ParseSearchResults extracts the books listed on a search page.
func ParseSearchResults(doc *goquery.Document) ([]SearchResult, error) {
	results := []SearchResult{}
	doc.Find("div.book-title-author-and-series").
		FilterFunction(func(_ int, s *goquery.Selection) bool {
			return s.HasClass("w-11/12")
		}).
		Each(func(_ int, book *goquery.Selection) {
			result := SearchResult{
				Title:  notAvailable,
				Author: notAvailable,
				BookId: notAvailable,
			}

			titleAnchor := book.Find("a").First()
			if titleAnchor.Length() > 0 {
				result.Title = strings.TrimSpace(titleAnchor.Text())
				if href, ok := titleAnchor.Attr("href"); ok {
					result.BookId = lastHrefSegment(href)
				}
			}

			book.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
				href, _ := a.Attr("href")
				if !strings.HasPrefix(href, "/author") {
					return true
				}
				result.Author = strings.TrimSpace(a.Text())
				return false
			})

			results = append(results, result)
		})
	return results, nil
}

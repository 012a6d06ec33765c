package storygraph

import (
	"regexp"
	"storygraph-backend/internal/journal"
	"storygraph-backend/lib/htmlutil"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	percentRegex      = regexp.MustCompile(`^\s*(\d[\d,]*)\s*%\s*$`)
	sessionPagesRegex = regexp.MustCompile(`(\d[\d,]*)\s+pages\s+read`)
	totalPagesRegex   = regexp.MustCompile(`\(\s*(\d[\d,]*)\s+pages\s+out\s+of\s+(\d[\d,]*)\s*\)`)
)

// parseCount parses a digit group that may carry "," thousands separators.
func parseCount(text string) *int {
	n, err := strconv.Atoi(strings.ReplaceAll(text, ",", ""))
	if err != nil {
		return nil
	}
	return &n
}

func firstLine(text string) string {
	text = strings.TrimSpace(text)
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(line)
}

// parseEntryFields reads the landmarks shared by both journal layouts, every
// one of them is optional.
func parseEntryFields(entry *goquery.Selection, raw *journal.RawEntry) {
	percent := entry.Find("div.text-teal-500").First()
	if percent.Length() > 0 {
		groups := percentRegex.FindStringSubmatch(percent.Text())
		if len(groups) == 2 {
			raw.ProgressPercent = parseCount(groups[1])
		}
	}

	pages := entry.Find(`p[class*="clear-both"]`).First()
	if pages.Length() > 0 {
		text := pages.Text()
		if groups := sessionPagesRegex.FindStringSubmatch(text); len(groups) == 2 {
			raw.PagesReadThisSession = parseCount(groups[1])
		}
		if groups := totalPagesRegex.FindStringSubmatch(text); len(groups) == 3 {
			raw.TotalPagesRead = parseCount(groups[1])
			raw.TotalPages = parseCount(groups[2])
		}
	}

	note := entry.Find("div.trix-content").First()
	if note.Length() > 0 {
		text := htmlutil.GetTextLines(note)
		raw.Note = &text
	}

	status := entry.Find(`span[class*="inline-flex"]`).First()
	if status.Length() > 0 {
		label := strings.TrimSpace(status.Text())
		raw.StatusLabel = &label
	}
}

// ParseJournalPage extracts one page of the user's journal history. Entries
// without a book title link are not reading sessions and are skipped.
func ParseJournalPage(doc *goquery.Document) ([]journal.RawEntry, error) {
	entries := []journal.RawEntry{}
	doc.Find("div.mb-7").Each(func(_ int, entry *goquery.Selection) {
		titleAnchor := entry.Find("p.font-semibold.text-sm").
			FilterFunction(func(_ int, p *goquery.Selection) bool {
				return p.HasClass("md:text-base")
			}).
			Find("a").
			First()
		if titleAnchor.Length() == 0 {
			return
		}

		raw := journal.RawEntry{
			BookTitle: strings.TrimSpace(titleAnchor.Text()),
			Date:      notAvailable,
		}
		if href, ok := titleAnchor.Attr("href"); ok {
			raw.BookId = lastHrefSegment(href)
		}

		date := entry.Find("p.font-semibold.text-xs").
			FilterFunction(func(_ int, p *goquery.Selection) bool {
				return p.HasClass("md:text-sm")
			}).
			First()
		if date.Length() > 0 {
			raw.Date = firstLine(date.Text())
		}

		parseEntryFields(entry, &raw)
		entries = append(entries, raw)
	})
	return entries, nil
}

// ParseBookJournal extracts the entries of a single book's journal page. The
// page does not repeat the book, so BookTitle and BookId are left empty.
func ParseBookJournal(doc *goquery.Document) ([]journal.RawEntry, error) {
	entries := []journal.RawEntry{}

	panes := doc.Find("span.journal-entry-panes").First()
	if panes.Length() == 0 {
		return entries, nil
	}

	panes.Find("div.grid-cols-4").Each(func(_ int, entry *goquery.Selection) {
		raw := journal.RawEntry{Date: notAvailable}
		date := entry.Find("p.font-semibold").First()
		if date.Length() > 0 {
			raw.Date = firstLine(date.Text())
		}
		parseEntryFields(entry, &raw)
		entries = append(entries, raw)
	})
	return entries, nil
}

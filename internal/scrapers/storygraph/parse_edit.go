package storygraph

import (
	"fmt"
	"net/url"
	"regexp"
	"storygraph-backend/internal/journal"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var editLinkRegex = regexp.MustCompile(`/edit-(read-instance|journal-entry)-from-book`)

const (
	paramReadInstanceId = "read_instance_id"
	paramJournalEntryId = "journal_entry_id"
)

// ParseEditLink finds the link to the dates form on an authenticated book
// page. It returns nil when the page has no such link or the link carries
// neither id parameter.
func ParseEditLink(doc *goquery.Document) (*EditLink, error) {
	var href string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		candidate, _ := a.Attr("href")
		if editLinkRegex.MatchString(candidate) {
			href = candidate
			return false
		}
		return true
	})
	if href == "" {
		return nil, nil
	}

	link, err := url.Parse(href)
	if err != nil {
		return nil, malformedLandmark(KIND_EDIT_LINK, "edit link href", err)
	}
	query := link.Query()

	if query.Has(paramReadInstanceId) {
		id := query.Get(paramReadInstanceId)
		if id == "" {
			return nil, missingLandmark(KIND_EDIT_LINK, paramReadInstanceId+" in the edit link")
		}
		return &EditLink{Kind: EDIT_READ_INSTANCE, Id: id}, nil
	}
	if query.Has(paramJournalEntryId) {
		id := query.Get(paramJournalEntryId)
		if id == "" {
			return nil, missingLandmark(KIND_EDIT_LINK, paramJournalEntryId+" in the edit link")
		}
		return &EditLink{Kind: EDIT_JOURNAL_ENTRY, Id: id}, nil
	}
	return nil, nil
}

func (k EditKind) formPath() string {
	switch k {
	case EDIT_READ_INSTANCE:
		return "/edit-read-instance-from-book"
	case EDIT_JOURNAL_ENTRY:
		return "/edit-journal-entry-from-book"
	}
	return ""
}

func (k EditKind) idParam() string {
	switch k {
	case EDIT_READ_INSTANCE:
		return paramReadInstanceId
	case EDIT_JOURNAL_ENTRY:
		return paramJournalEntryId
	}
	return ""
}

// datePrefixes returns the select id prefixes of the start and finish date.
func (k EditKind) datePrefixes() (start, finish string) {
	switch k {
	case EDIT_READ_INSTANCE:
		return "start_", ""
	case EDIT_JOURNAL_ENTRY:
		return "started_at_", "finished_at_"
	}
	return "", ""
}

// ParseEditForm reads the start and finish dates out of an edit form, telling
// read instance forms and journal entry forms apart by their select ids.
func ParseEditForm(doc *goquery.Document) (ReadDates, error) {
	for _, kind := range []EditKind{EDIT_READ_INSTANCE, EDIT_JOURNAL_ENTRY} {
		selector := fmt.Sprintf(`select[id^="%s_"]`, kind.idPrefix())
		if doc.Find(selector).Length() > 0 {
			return parseEditForm(doc, kind), nil
		}
	}
	return ReadDates{}, nil
}

func parseEditForm(doc *goquery.Document, kind EditKind) ReadDates {
	start, finish := kind.datePrefixes()
	return ReadDates{
		StartDate:  selectedDate(doc, kind.idPrefix()+"_"+start),
		FinishDate: selectedDate(doc, kind.idPrefix()+"_"+finish),
	}
}

func selectedValue(doc *goquery.Document, id string) string {
	option := doc.Find(fmt.Sprintf(`select[id="%s"] option[selected]`, id)).First()
	return strings.TrimSpace(option.AttrOr("value", ""))
}

func selectedDate(doc *goquery.Document, prefix string) *string {
	day := selectedValue(doc, prefix+"day")
	month := selectedValue(doc, prefix+"month")
	year := selectedValue(doc, prefix+"year")
	if day == "" || month == "" || year == "" {
		return nil
	}
	return journal.FormatDate(year, month, day)
}

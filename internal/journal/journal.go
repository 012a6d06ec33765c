// Package journal holds the canonical reading-journal model and the pure
// normalization applied to records freshly extracted from journal pages.
package journal

import (
	"encoding/json"
	"fmt"
	"storygraph-backend/lib/textutil"
)

type Status int

const (
	StatusUnknown Status = iota
	StatusStartedReading
	StatusFinished
	StatusOther
)

const (
	labelStartedReading = "started reading"
	labelFinished       = "finished"
)

// StatusFromLabel classifies a status label as shown on the page, a nil label
// means the page had no status badge at all.
func StatusFromLabel(label *string) Status {
	if label == nil {
		return StatusUnknown
	}
	switch textutil.NormalizeLabel(*label) {
	case labelStartedReading:
		return StatusStartedReading
	case labelFinished:
		return StatusFinished
	}
	return StatusOther
}

func (s Status) String() string {
	switch s {
	case StatusStartedReading:
		return "started_reading"
	case StatusFinished:
		return "finished"
	case StatusOther:
		return "other"
	}
	return "unknown"
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "started_reading":
		*s = StatusStartedReading
	case "finished":
		*s = StatusFinished
	case "other":
		*s = StatusOther
	case "unknown":
		*s = StatusUnknown
	default:
		return fmt.Errorf("unknown journal status %q", str)
	}
	return nil
}

// RawEntry is a journal entry as extracted from the page, before any defaults
// are applied. Nil pointers are landmarks that were absent.
type RawEntry struct {
	BookTitle            string
	BookId               string
	Date                 string
	StatusLabel          *string
	ProgressPercent      *int
	PagesReadThisSession *int
	TotalPagesRead       *int
	TotalPages           *int
	Note                 *string
}

// Entry is one reading session in canonical form.
type Entry struct {
	BookTitle            string  `json:"book_title"`
	BookId               string  `json:"book_id"`
	Date                 string  `json:"date"`
	StatusLabel          *string `json:"status"`
	Status               Status  `json:"status_kind"`
	ProgressPercent      *int    `json:"progress_percent"`
	PagesReadThisSession *int    `json:"pages_read_this_session"`
	TotalPagesRead       *int    `json:"total_pages_read"`
	TotalPages           *int    `json:"total_pages"`
	Note                 *string `json:"note"`
}

// CanonicalDate returns the entry date as YYYY-MM-DD, ok is false when the
// date is not in the site's display format (ex. "No date").
func (e Entry) CanonicalDate() (string, bool) {
	return CanonicalDate(e.Date)
}

func intPtr(n int) *int {
	return &n
}

// Normalize turns a batch of raw entries into canonical entries.
//
// The batch must be in page order, then document order within a page. The
// total_pages backfill keeps the first value seen for a book, so reordering
// the input can change the output.
//
// Normalize is pure, the input is not modified.
func Normalize(raw []RawEntry) []Entry {
	entries := make([]Entry, len(raw))
	for i, r := range raw {
		entries[i] = applyStatusDefaults(r)
	}
	backfillTotalPages(entries)
	return entries
}

func applyStatusDefaults(r RawEntry) Entry {
	e := Entry{
		BookTitle:            r.BookTitle,
		BookId:               r.BookId,
		Date:                 r.Date,
		StatusLabel:          r.StatusLabel,
		Status:               StatusFromLabel(r.StatusLabel),
		ProgressPercent:      r.ProgressPercent,
		PagesReadThisSession: r.PagesReadThisSession,
		TotalPagesRead:       r.TotalPagesRead,
		TotalPages:           r.TotalPages,
		Note:                 r.Note,
	}

	switch e.Status {
	case StatusStartedReading:
		if e.ProgressPercent == nil {
			e.ProgressPercent = intPtr(0)
		}
		if e.PagesReadThisSession == nil {
			e.PagesReadThisSession = intPtr(0)
		}
		if e.TotalPagesRead == nil {
			e.TotalPagesRead = intPtr(0)
		}
	case StatusFinished:
		if e.ProgressPercent == nil {
			e.ProgressPercent = intPtr(100)
		}
	}
	return e
}

func backfillTotalPages(entries []Entry) {
	firstSeen := make(map[string]int)
	for _, e := range entries {
		if e.BookId == "" || e.TotalPages == nil {
			continue
		}
		if _, ok := firstSeen[e.BookId]; !ok {
			firstSeen[e.BookId] = *e.TotalPages
		}
	}

	for i := range entries {
		e := &entries[i]
		if e.BookId == "" || e.TotalPages != nil {
			continue
		}
		if total, ok := firstSeen[e.BookId]; ok {
			e.TotalPages = intPtr(total)
		}
	}
}

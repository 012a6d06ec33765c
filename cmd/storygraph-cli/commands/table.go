package commands

import (
	"fmt"
	"os"
	"storygraph-backend/internal/journal"
	"storygraph-backend/internal/reconcile"
	"storygraph-backend/internal/scrapers/storygraph"

	"github.com/jedib0t/go-pretty/v6/table"
)

func renderTable(header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func orNA[T any](value *T) any {
	if value == nil {
		return "N/A"
	}
	return *value
}

func renderSearchResults(results []storygraph.SearchResult) {
	rows := make([]table.Row, len(results))
	for i, r := range results {
		rows[i] = table.Row{r.Title, r.Author, r.BookId}
	}
	renderTable(table.Row{"Title", "Author", "Book ID"}, rows)
}

func renderListedBooks(books []storygraph.ListedBook) {
	rows := make([]table.Row, len(books))
	for i, b := range books {
		rows[i] = table.Row{b.Title, b.BookId}
	}
	renderTable(table.Row{"Title", "Book ID"}, rows)
}

func renderEntries(entries []journal.Entry) {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		progress := "N/A"
		if e.ProgressPercent != nil {
			progress = fmt.Sprintf("%d%%", *e.ProgressPercent)
		}
		rows[i] = table.Row{
			e.Date,
			e.BookTitle,
			e.Status.String(),
			progress,
			orNA(e.PagesReadThisSession),
			orNA(e.TotalPages),
		}
	}
	renderTable(table.Row{"Date", "Title", "Status", "Progress", "Pages", "Total"}, rows)
}

func renderRecords(records []reconcile.Record) {
	rows := make([]table.Row, len(records))
	for i, r := range records {
		progress := "N/A"
		if r.Progress != nil {
			progress = fmt.Sprintf("%.2f", *r.Progress)
		}
		rows[i] = table.Row{r.Date, r.BookTitle, r.Author, r.Status, progress}
	}
	renderTable(table.Row{"Date", "Title", "Author", "Status", "Progress"}, rows)
}

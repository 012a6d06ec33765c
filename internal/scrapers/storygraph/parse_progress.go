package storygraph

import (
	"regexp"
	"storygraph-backend/lib/textutil"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var toReadRegex = regexp.MustCompile(`\s*to read\s*`)

// ParseReadingProgress works out how far the user is into a book from the
// authenticated book page.
func ParseReadingProgress(doc *goquery.Document) (Progress, error) {
	label := doc.Find("button.read-status-label").First()
	if label.Length() > 0 && textutil.MatchLabel(label.Text(), "read") {
		return Progress{Progress: "100%"}, nil
	}

	bar := doc.Find("div.progress-bar").First()
	if bar.Length() > 0 {
		text := strings.TrimSpace(bar.Find("span").First().Text())
		if text != "" {
			return Progress{Progress: text}, nil
		}
		empty := bar.Find("div[style]").FilterFunction(func(_ int, div *goquery.Selection) bool {
			return strings.Contains(div.AttrOr("style", ""), "width: 0%")
		})
		if empty.Length() > 0 {
			return Progress{Progress: "0%"}, nil
		}
	}

	toRead := doc.Find("button").FilterFunction(func(_ int, button *goquery.Selection) bool {
		return toReadRegex.MatchString(button.Text())
	})
	if toRead.Length() > 0 {
		return Progress{Progress: "0%"}, nil
	}

	return Progress{}, missingLandmark(KIND_READING_STATUS, "a reading status")
}

package journal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var displayDateRegex = regexp.MustCompile(`^\s*(\d{1,2})\s+([A-Za-z]+)\s+(\d{4})\s*$`)

var months = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// CanonicalDate converts a display date ("12 June 2024") into "2024-06-12".
// Anything that does not match, including impossible days like "31 February
// 2024", yields ok = false.
func CanonicalDate(display string) (string, bool) {
	groups := displayDateRegex.FindStringSubmatch(display)
	if len(groups) < 4 {
		return "", false
	}
	month, ok := months[strings.ToLower(groups[2])]
	if !ok {
		return "", false
	}
	day, err := strconv.Atoi(groups[1])
	if err != nil {
		return "", false
	}
	year, err := strconv.Atoi(groups[3])
	if err != nil {
		return "", false
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		return "", false
	}
	return t.Format(time.DateOnly), true
}

// CanonicalDatePtr is CanonicalDate with nil standing in for "no date".
func CanonicalDatePtr(display string) *string {
	date, ok := CanonicalDate(display)
	if !ok {
		return nil
	}
	return &date
}

// FormatDate builds a canonical date out of the numeric values of a date form,
// values are zero padded. It returns nil if any part is missing or not a number.
func FormatDate(year, month, day string) *string {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return nil
	}
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return nil
	}
	d, err := strconv.Atoi(strings.TrimSpace(day))
	if err != nil {
		return nil
	}
	date := fmt.Sprintf("%04d-%02d-%02d", y, m, d)
	return &date
}

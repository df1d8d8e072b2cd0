package service

import (
	"strconv"
	"strings"
	"time"
)

// monthAbbreviations maps the localized month abbreviations the frontend
// writes into dates ("02 jan 2025"). Portuguese is the primary locale;
// English is accepted because older exports carried it.
var monthAbbreviations = map[string]time.Month{
	"jan": time.January,
	"fev": time.February, "feb": time.February,
	"mar": time.March,
	"abr": time.April, "apr": time.April,
	"mai": time.May, "may": time.May,
	"jun": time.June,
	"jul": time.July,
	"ago": time.August, "aug": time.August,
	"set": time.September, "sep": time.September,
	"out": time.October, "oct": time.October,
	"nov": time.November,
	"dez": time.December, "dec": time.December,
}

// ParseDisplayDate parses the localized "DD Mon YYYY" display string into a
// chronological key. Malformed dates return the zero time, which sorts as
// earliest; reconciliation never fails on a bad date, it degrades to a
// defined ordering.
func ParseDisplayDate(display string) time.Time {
	fields := strings.Fields(strings.TrimSpace(display))
	if len(fields) != 3 {
		return time.Time{}
	}

	day, err := strconv.Atoi(fields[0])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}
	}

	month, ok := monthAbbreviations[strings.ToLower(strings.TrimSuffix(fields[1], "."))]
	if !ok {
		return time.Time{}
	}

	year, err := strconv.Atoi(fields[2])
	if err != nil || year < 1000 {
		return time.Time{}
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// FormatDisplayDate renders a time back into the localized display string,
// used when the backend itself authors ledger entries.
func FormatDisplayDate(t time.Time) string {
	abbreviations := []string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}
	return strconv.Itoa(t.Day()) + " " + abbreviations[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

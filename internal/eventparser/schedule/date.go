package schedule

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

type layoutSpec struct {
	layout  string
	hasYear bool
}

var dateLayouts = []layoutSpec{
	{layout: "2006-01-02", hasYear: true},
	{layout: "2006/01/02", hasYear: true},
	{layout: "January 2, 2006", hasYear: true},
	{layout: "January 2 2006", hasYear: true},
	{layout: "Jan 2, 2006", hasYear: true},
	{layout: "Jan 2 2006", hasYear: true},
	{layout: "2 January 2006", hasYear: true},
	{layout: "2 January, 2006", hasYear: true},
	{layout: "2 Jan 2006", hasYear: true},
	{layout: "2 Jan, 2006", hasYear: true},
	{layout: "2 January 06", hasYear: true},
	{layout: "2 Jan 06", hasYear: true},
	{layout: "1-2-2006", hasYear: true},
	{layout: "1-2-06", hasYear: true},
	{layout: "January 2", hasYear: false},
	{layout: "Jan 2", hasYear: false},
	{layout: "2 January", hasYear: false},
	{layout: "2 Jan", hasYear: false},
}

var (
	weekdayCleaner = regexp.MustCompile(`(?i)^(?:mon|tue|tues|wed|thu|thur|thurs|fri|sat|sun)(?:day|sday|nesday|rsday|urday)?\.?,?\s+`)
	ordinalRE      = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)\b`)
	septRE         = regexp.MustCompile(`(?i)\bsept\b`)
	monthDotRE     = regexp.MustCompile(`(?i)\b([a-z]{3})\.(\s)`)
	isoDateTimeRE  = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[T ]`)
)

// ParseDate turns a free-form date into a calendar date at midnight UTC.
// Strings containing "/" are read as month/day/year first; everything else,
// and slash dates that do not fit, go through the layout list. Dates without
// a year take the year of now. ok is false when nothing matched.
func ParseDate(raw string, now time.Time) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if strings.Contains(raw, "/") {
		if day, err := parseSlashDate(raw); err == nil {
			return day, true
		}
	}
	return parsePhrase(raw, now)
}

// parseSlashDate reads exactly three "/"-separated parts as M/D/Y.
func parseSlashDate(raw string) (time.Time, error) {
	parts := strings.Split(raw, "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("expected 3 date parts, got %d", len(parts))
	}
	month := zeroPad(strings.TrimSpace(parts[0]))
	day := zeroPad(strings.TrimSpace(parts[1]))
	year := strings.TrimSpace(parts[2])
	if len(year) == 2 {
		year = "20" + year
	}
	return time.Parse("2006-01-02", year+"-"+month+"-"+day)
}

func parsePhrase(raw string, now time.Time) (time.Time, bool) {
	s := normalizeDateInput(raw)
	if m := isoDateTimeRE.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	for _, candidate := range dateLayouts {
		t, err := time.Parse(candidate.layout, s)
		if err != nil {
			continue
		}
		if !candidate.hasYear {
			withYear := time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			// Feb 29 outside a leap year would roll into March.
			if withYear.Month() != t.Month() {
				return time.Time{}, false
			}
			t = withYear
		}
		return t, true
	}
	return time.Time{}, false
}

func normalizeDateInput(raw string) string {
	s := strings.Join(strings.Fields(raw), " ")
	s = weekdayCleaner.ReplaceAllString(s, "")
	s = ordinalRE.ReplaceAllString(s, "$1")
	s = septRE.ReplaceAllString(s, "Sep")
	s = monthDotRE.ReplaceAllString(s, "$1$2")
	return strings.TrimSpace(s)
}

func zeroPad(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

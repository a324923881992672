package calendarlink

import (
	"net/url"
	"strings"

	"picsync/backend/internal/eventparser/core"
)

// BaseURL is the Google Calendar event template endpoint. Every link this
// package accepts or produces starts with it.
const BaseURL = "https://calendar.google.com/calendar/render?action=TEMPLATE"

// Link holds the values of a deterministic calendar link. Empty fields are
// left out of the URL.
type Link struct {
	Title    string
	Start    string
	End      string
	Location string
	Details  string
	TimeZone string
}

// LinkFor maps a normalized event and its window to link values.
func LinkFor(event core.CalendarEvent, window core.Range) Link {
	tz := window.TimeZone
	if tz == "" {
		tz = core.DefaultTimeZone
	}
	return Link{
		Title:    event.Title,
		Start:    window.Start,
		End:      window.End,
		Location: event.Location,
		Details:  event.Description,
		TimeZone: tz,
	}
}

// Build renders l. Parameters are appended as text, dates, location,
// details, ctz; identical input yields an identical URL.
func Build(l Link) string {
	var b strings.Builder
	b.WriteString(BaseURL)
	appendParam(&b, "text", l.Title)
	if l.Start != "" && l.End != "" {
		b.WriteString("&dates=")
		b.WriteString(escape(l.Start))
		b.WriteString("/")
		b.WriteString(escape(l.End))
	}
	appendParam(&b, "location", l.Location)
	appendParam(&b, "details", l.Details)
	appendParam(&b, "ctz", l.TimeZone)
	return b.String()
}

// BuildForEvent implements core.LinkBuilder.
func BuildForEvent(event core.CalendarEvent, window core.Range) string {
	return Build(LinkFor(event, window))
}

func appendParam(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	b.WriteString("&")
	b.WriteString(key)
	b.WriteString("=")
	b.WriteString(escape(value))
}

// escape percent-encodes a query value with %20 for spaces.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

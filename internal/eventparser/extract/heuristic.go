package extract

import (
	"strings"
	"unicode/utf8"

	"picsync/backend/internal/eventparser/core"
)

const (
	titleScanLines       = 3
	titleMinLength       = 5
	descriptionMaxLength = 3
)

// Extract builds the heuristic baseline event from recognized text.
func Extract(text string) core.CalendarEvent {
	event := core.NewCalendarEvent()
	lines := Lines(text)

	event.Title = GuessTitle(lines)
	event.Date = FindDate(text)
	event.Time = FindTime(text)
	event.Location = ExtractLocation(lines)
	event.Description = describe(lines, event.Title, event.Location)
	return event
}

// GuessTitle picks the first reasonably long line among the first few that
// is not a clock time or date fragment, falling back to the first line.
func GuessTitle(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	head := lines
	if len(head) > titleScanLines {
		head = head[:titleScanLines]
	}
	for _, line := range head {
		if utf8.RuneCountInString(line) > titleMinLength && !clockOrDateFragment.MatchString(line) {
			return line
		}
	}
	return lines[0]
}

// describe keeps the lines not already used for another field. Lines are
// compared for exact equality only.
func describe(lines []string, title, location string) string {
	out := make([]string, 0, descriptionMaxLength)
	for _, line := range lines {
		if len(out) == descriptionMaxLength {
			break
		}
		if line == title || line == location || HasDateOrTime(line) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

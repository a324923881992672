package extract

import (
	"testing"

	"picsync/backend/internal/eventparser/core"
)

func TestLinesTrimsAndDropsEmpty(t *testing.T) {
	got := Lines("  \n  Jazz   Night \n\n\t at the Blue Room  \n")
	if len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(got), got)
	}
	if got[0] != "Jazz   Night" {
		t.Fatalf("inner whitespace should be kept, got %q", got[0])
	}
	if got[1] != "at the Blue Room" {
		t.Fatalf("unexpected second line: %q", got[1])
	}
	if Lines("   ") != nil {
		t.Fatalf("expected nil for blank input")
	}
}

func TestGuessTitle(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{name: "first long line", lines: []string{"Board Meeting", "Agenda"}, want: "Board Meeting"},
		{name: "skips clock line", lines: []string{"10:30 sharp", "Annual Picnic"}, want: "Annual Picnic"},
		{name: "skips short line", lines: []string{"NEW", "Open House", "Details"}, want: "Open House"},
		{name: "skips slash date", lines: []string{"10/03 Friday", "Book Club Meetup"}, want: "Book Club Meetup"},
		{name: "only first three lines", lines: []string{"A", "B", "C", "Long Enough Title"}, want: "A"},
		{name: "falls back to first line", lines: []string{"Hi", "Yo"}, want: "Hi"},
		{name: "empty", lines: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GuessTitle(tt.lines); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExtractLocationReturnsWholeLine(t *testing.T) {
	tests := []struct {
		lines []string
		want  string
	}{
		{lines: []string{"Gala", "Venue: Grand Hall"}, want: "Venue: Grand Hall"},
		{lines: []string{"Dinner at Luigi's"}, want: "Dinner at Luigi's"},
		{lines: []string{"Science Building 3"}, want: "Science Building 3"},
		{lines: []string{"ADDRESS: 1 Main St"}, want: "ADDRESS: 1 Main St"},
		{lines: []string{"Nothing here"}, want: ""},
	}
	for _, tt := range tests {
		if got := ExtractLocation(tt.lines); got != tt.want {
			t.Fatalf("lines %q: expected %q, got %q", tt.lines, tt.want, got)
		}
	}
}

func TestExtractDescriptionLimitsLines(t *testing.T) {
	text := "Spring Concert\nFeaturing the youth choir\nFree entry\nBring a friend\nRefreshments served"
	event := Extract(text)
	want := "Featuring the youth choir\nFree entry\nBring a friend"
	if event.Description != want {
		t.Fatalf("expected %q, got %q", want, event.Description)
	}
	if event.Duration != core.DefaultDuration {
		t.Fatalf("expected default duration, got %q", event.Duration)
	}
}

func TestExtractDescriptionUsesExactEquality(t *testing.T) {
	// The title differs only by inner whitespace, so it is not deduplicated.
	event := Extract("Movie  Night\nMovie Night\n7 PM")
	if event.Title != "Movie  Night" {
		t.Fatalf("unexpected title: %q", event.Title)
	}
	if event.Description != "Movie Night" {
		t.Fatalf("expected near-duplicate line in description, got %q", event.Description)
	}
	if event.Time != "7 PM" {
		t.Fatalf("unexpected time: %q", event.Time)
	}
}

func TestExtractEmptyText(t *testing.T) {
	event := Extract("")
	if event.Title != "" || event.Date != "" || event.Time != "" || event.Location != "" || event.Description != "" {
		t.Fatalf("expected empty fields, got %+v", event)
	}
	if event.Duration != core.DefaultDuration {
		t.Fatalf("expected default duration, got %q", event.Duration)
	}
}

package extract

import "testing"

func TestFindDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Due 10/03/2025 at noon", want: "10/03/2025"},
		{input: "Due 10-3-25", want: "10-3-25"},
		{input: "Held on 3 October 2025", want: "3 October 2025"},
		{input: "Friday, 3 Oct in the park", want: "Friday, 3 Oct"},
		{input: "Oct 3, 2025", want: "Oct 3, 2025"},
		{input: "september 21st 2026", want: "september 21st 2026"},
		{input: "12/01/2025 or 3 Jan 2026", want: "12/01/2025"},
		{input: "no date here", want: ""},
	}
	for _, tt := range tests {
		if got := FindDate(tt.input); got != tt.want {
			t.Fatalf("FindDate(%q): expected %q, got %q", tt.input, tt.want, got)
		}
	}
}

func TestFindTime(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Starts 2:30 PM sharp", want: "2:30 PM"},
		{input: "Starts 2:30pm", want: "2:30pm"},
		{input: "Doors 7 PM", want: "7 PM"},
		{input: "Kickoff 18:45", want: "18:45"},
		{input: "7 PM then 9:15 PM", want: "9:15 PM"},
		{input: "no time", want: ""},
	}
	for _, tt := range tests {
		if got := FindTime(tt.input); got != tt.want {
			t.Fatalf("FindTime(%q): expected %q, got %q", tt.input, tt.want, got)
		}
	}
}

func TestHasDateOrTime(t *testing.T) {
	if !HasDateOrTime("2:30 PM to 4:00 PM") {
		t.Fatalf("expected time line to match")
	}
	if !HasDateOrTime("Oct 3, 2025") {
		t.Fatalf("expected date line to match")
	}
	if HasDateOrTime("Room 204") {
		t.Fatalf("room number should not match")
	}
}

package enhance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	"picsync/backend/internal/eventparser/core"
)

type stubCompleter struct {
	reply  string
	err    error
	prompt string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.reply, s.err
}

func newTestEnhancer(c core.Completer) *Enhancer {
	now := func() time.Time { return time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC) }
	return NewWithClock(c, now, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var baseline = core.CalendarEvent{
	Title:    "Team Sync",
	Date:     "Oct 3, 2025",
	Time:     "2:30 PM",
	Location: "Room 204",
	Duration: core.DefaultDuration,
}

func TestEnhanceAppliesReply(t *testing.T) {
	stub := &stubCompleter{reply: `{"title": "Quarterly Review", "location": null, "confidence": "High", "extra": 1}`}
	got, ok := newTestEnhancer(stub).Enhance(context.Background(), "raw text here", baseline)
	if !ok {
		t.Fatalf("expected enhancement")
	}
	if got.Title != "Quarterly Review" || got.Location != "Room 204" {
		t.Fatalf("unexpected merge: %+v", got)
	}
	if !got.Enhanced {
		t.Fatalf("expected provenance flag")
	}
	if string(got.AIPayload) != `{"title":"Quarterly Review","location":null,"confidence":"High","extra":1}` {
		t.Fatalf("unexpected payload: %s", got.AIPayload)
	}
	if !strings.Contains(stub.prompt, "raw text here") || !strings.Contains(stub.prompt, "Wednesday, October 1, 2025") {
		t.Fatalf("prompt missing text or date: %q", stub.prompt)
	}
}

func TestEnhanceEmptyObjectKeepsFields(t *testing.T) {
	got, ok := newTestEnhancer(&stubCompleter{reply: "{}"}).Enhance(context.Background(), "raw", baseline)
	if !ok {
		t.Fatalf("empty object is a valid reply")
	}
	if !reflect.DeepEqual(got.Canonical(), baseline) {
		t.Fatalf("expected baseline fields, got %+v", got)
	}
}

func TestEnhanceFailuresReturnBaseline(t *testing.T) {
	tests := map[string]core.Completer{
		"nil completer":      nil,
		"call error":         &stubCompleter{err: errors.New("boom")},
		"unavailable":        &stubCompleter{err: core.ErrUnavailable},
		"timeout":            &stubCompleter{err: context.DeadlineExceeded},
		"trailing comma":     &stubCompleter{reply: `{"title": "X",}`},
		"unknown confidence": &stubCompleter{reply: `{"confidence": "Sure"}`},
		"empty reply":        &stubCompleter{reply: "  "},
	}
	for name, completer := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := newTestEnhancer(completer).Enhance(context.Background(), "raw", baseline)
			if ok {
				t.Fatalf("expected no enhancement")
			}
			if !reflect.DeepEqual(got.Canonical(), baseline) || got.Enhanced {
				t.Fatalf("expected baseline, got %+v", got)
			}
		})
	}
}

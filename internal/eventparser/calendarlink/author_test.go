package calendarlink

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
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

func newTestAuthor(c *stubCompleter) *Author {
	now := func() time.Time { return time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC) }
	if c == nil {
		return NewAuthor(nil, now, slog.New(slog.NewTextHandler(io.Discard, nil)))
	}
	return NewAuthor(c, now, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAuthorAcceptsValidLink(t *testing.T) {
	link := BaseURL + "&text=Team%20Sync&dates=20251003T143000/20251003T153000"
	stub := &stubCompleter{reply: "```json\n{\"url\": \"" + link + "\"}\n```"}
	got, ok := newTestAuthor(stub).Author(context.Background(), "Team Sync")
	if !ok || got != link {
		t.Fatalf("expected %q, got %q (ok=%v)", link, got, ok)
	}
	if !strings.Contains(stub.prompt, "Wednesday, October 1, 2025") {
		t.Fatalf("prompt should carry the current date: %q", stub.prompt)
	}
	if !strings.Contains(stub.prompt, BaseURL) {
		t.Fatalf("prompt should carry the base url")
	}
}

func TestAuthorRejects(t *testing.T) {
	tests := map[string]*stubCompleter{
		"call error":    {err: errors.New("boom")},
		"not json":      {reply: "here is your link: " + BaseURL},
		"missing dates": {reply: `{"url": "` + BaseURL + `&text=A"}`},
		"null url":      {reply: `{"url": null}`},
		"wrong host":    {reply: `{"url": "https://evil.example/?dates=1/2"}`},
	}
	for name, stub := range tests {
		t.Run(name, func(t *testing.T) {
			if got, ok := newTestAuthor(stub).Author(context.Background(), "text"); ok {
				t.Fatalf("expected rejection, got %q", got)
			}
		})
	}
}

func TestAuthorWithoutCompleter(t *testing.T) {
	if _, ok := newTestAuthor(nil).Author(context.Background(), "text"); ok {
		t.Fatalf("expected no link without completer")
	}
}

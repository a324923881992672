package tests

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"picsync/backend/internal/eventparser"
	"picsync/backend/internal/eventparser/core"
)

const authorPromptMarker = "Create a Google Calendar link"

// fakeCompleter answers enhancement and link-authoring prompts separately.
type fakeCompleter struct {
	mu           sync.Mutex
	enhanceReply string
	enhanceErr   error
	authorReply  string
	authorErr    error
	prompts      []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if strings.Contains(prompt, authorPromptMarker) {
		return f.authorReply, f.authorErr
	}
	return f.enhanceReply, f.enhanceErr
}

func (f *fakeCompleter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// blockingCompleter waits for the context to end.
type blockingCompleter struct{}

func (blockingCompleter) Complete(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

var fixedNow = time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

func newTestPipeline(completer core.Completer, concurrent bool) *core.Pipeline {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return eventparser.NewPipeline(eventparser.Options{
		Completer:  completer,
		AITimeout:  time.Second,
		Concurrent: concurrent,
		Now:        func() time.Time { return fixedNow },
	}, logger)
}

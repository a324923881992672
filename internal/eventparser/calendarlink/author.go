package calendarlink

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"picsync/backend/internal/eventparser/core"
)

const authorPromptTemplate = `Create a Google Calendar link for the event described in the text below.
The text was recognized from a photo or screenshot and may contain errors.

Today is %s.

Text:
"""
%s
"""

Rules:
- The link must start with exactly: %s
- Append URL-encoded parameters: text (title), dates, location, details (at most three lines), ctz.
- dates is START/END, each formatted YYYYMMDDTHHMMSS in local time with no "Z" and no offset.
- Read slash dates as month/day/year. If no date is given use today.
- If no start time is given use 12:00. If no end time is given the event lasts one hour.
- ctz is an IANA time zone; use %s when the text does not say.
- Leave out any parameter the text gives no value for, except dates and ctz.

Reply with exactly one JSON object and nothing else: {"url": "..."}`

type authoredLink struct {
	URL *string `json:"url"`
}

// Author asks a text-completion collaborator to write the whole link.
type Author struct {
	completer core.Completer
	now       func() time.Time
	logger    *slog.Logger
}

// NewAuthor creates author. A nil completer never produces a link.
func NewAuthor(completer core.Completer, now func() time.Time, logger *slog.Logger) *Author {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Author{completer: completer, now: now, logger: logger}
}

// Author implements core.LinkAuthor.
func (a *Author) Author(ctx context.Context, rawText string) (string, bool) {
	if a == nil || a.completer == nil {
		return "", false
	}
	prompt := fmt.Sprintf(authorPromptTemplate, a.now().Format("Monday, January 2, 2006"), rawText, BaseURL, core.DefaultTimeZone)
	raw, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		a.logger.Warn("calendar_link_author", "status", "call_failed", "error", err)
		return "", false
	}
	var reply authoredLink
	if _, err := core.DecodeJSONReply(raw, &reply); err != nil {
		a.logger.Warn("calendar_link_author", "status", "malformed_response", "error", err)
		return "", false
	}
	if reply.URL == nil || !Acceptable(*reply.URL) {
		a.logger.Warn("calendar_link_author", "status", "rejected")
		return "", false
	}
	return *reply.URL, true
}

// Acceptable reports whether an authored link may be handed to the caller:
// it must start with BaseURL exactly and carry a dates parameter.
func Acceptable(link string) bool {
	if !strings.HasPrefix(link, BaseURL) {
		return false
	}
	return strings.Contains(strings.TrimPrefix(link, BaseURL), "&dates=")
}

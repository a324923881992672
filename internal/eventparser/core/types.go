package core

import (
	"context"
	"encoding/json"
	"errors"
)

// DefaultDuration is the human-readable duration every event starts with.
const DefaultDuration = "1 hour"

// DefaultTimeZone is used when neither the text nor the enhancement names a zone.
const DefaultTimeZone = "America/New_York"

// ErrUnavailable marks a collaborator that is not configured or gave no usable answer.
var ErrUnavailable = errors.New("capability unavailable")

// Confidence is the enhancement's self-reported certainty.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Valid reports whether c is one of the known levels.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	default:
		return false
	}
}

// CalendarEvent is the best-effort event record. Every field may be empty.
type CalendarEvent struct {
	Title       string     `json:"title"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
	StartTime   string     `json:"start_time,omitempty"`
	EndTime     string     `json:"end_time,omitempty"`
	TimeZone    string     `json:"timezone,omitempty"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Duration    string     `json:"duration"`
	Confidence  Confidence `json:"confidence,omitempty"`

	// Diagnostics only.
	Enhanced  bool            `json:"ai_enhanced,omitempty"`
	AIPayload json.RawMessage `json:"ai_payload,omitempty"`
}

// NewCalendarEvent returns an empty event with defaults applied.
func NewCalendarEvent() CalendarEvent {
	return CalendarEvent{Duration: DefaultDuration}
}

// Canonical returns a copy without provenance fields.
func (e CalendarEvent) Canonical() CalendarEvent {
	e.Enhanced = false
	e.AIPayload = nil
	return e
}

// PrimaryStartTime is the clock expression the normalizer should treat as the start.
func (e CalendarEvent) PrimaryStartTime() string {
	if e.StartTime != "" {
		return e.StartTime
	}
	return e.Time
}

// LinkSource names the strategy that produced the calendar URL.
type LinkSource string

const (
	LinkSourceBuilder LinkSource = "builder"
	LinkSourceAI      LinkSource = "ai-url"
)

// Range is the normalized event window. Start and End use YYYYMMDDTHHMMSS
// without an offset; TimeZone is an IANA identifier.
type Range struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	TimeZone string `json:"timezone"`
}

// Result is the pipeline output for one request.
type Result struct {
	Event             CalendarEvent `json:"event"`
	Range             Range         `json:"dates"`
	CalendarURL       string        `json:"calendar_url"`
	CalendarURLSource LinkSource    `json:"calendar_url_source"`
	UsedEnhancement   bool          `json:"used_ai"`
}

// Completer is a text-completion collaborator.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Enhancer corrects and completes a baseline event. It returns the baseline
// unchanged and false whenever enhancement is unavailable.
type Enhancer interface {
	Enhance(ctx context.Context, rawText string, baseline CalendarEvent) (CalendarEvent, bool)
}

// LinkAuthor asks a collaborator for a ready calendar URL. ok is false when
// no acceptable URL was produced.
type LinkAuthor interface {
	Author(ctx context.Context, rawText string) (url string, ok bool)
}

// Extractor produces the heuristic baseline.
type Extractor func(text string) CalendarEvent

// Normalizer derives the canonical window for an event. It never fails.
type Normalizer interface {
	Normalize(event CalendarEvent) Range
}

// LinkBuilder deterministically builds a calendar URL.
type LinkBuilder func(event CalendarEvent, window Range) string

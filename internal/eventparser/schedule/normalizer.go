package schedule

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"picsync/backend/internal/eventparser/core"
)

// CompactLayout is the calendar-link timestamp form, without an offset.
const CompactLayout = "20060102T150405"

// Normalizer derives the start/end window of an event.
type Normalizer struct {
	now    func() time.Time
	logger *slog.Logger
}

// New creates a normalizer using the wall clock.
func New(logger *slog.Logger) *Normalizer {
	return NewWithClock(time.Now, logger)
}

// NewWithClock creates a normalizer with an injected clock.
func NewWithClock(now func() time.Time, logger *slog.Logger) *Normalizer {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{now: now, logger: logger}
}

// Normalize never fails: anything it cannot read becomes today, 12:00 to 13:00.
func (n *Normalizer) Normalize(event core.CalendarEvent) core.Range {
	tz := strings.TrimSpace(event.TimeZone)
	if tz == "" {
		tz = core.DefaultTimeZone
	}
	now := n.now()
	start, end, err := window(event, now)
	if err != nil {
		n.logger.Debug("event_window_fallback", "error", err, "date", event.Date, "time", event.PrimaryStartTime())
		day := midnight(now)
		start = day.Add(12 * time.Hour)
		end = day.Add(13 * time.Hour)
	}
	return core.Range{
		Start:    start.Format(CompactLayout),
		End:      end.Format(CompactLayout),
		TimeZone: tz,
	}
}

func window(event core.CalendarEvent, now time.Time) (time.Time, time.Time, error) {
	day, ok := ParseDate(event.Date, now)
	if !ok {
		day = midnight(now)
	}

	startClock, err := To24Hour(event.PrimaryStartTime())
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start time: %w", err)
	}
	startHour, startMinute, err := splitClock(startClock)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start time: %w", err)
	}
	start := at(day, startHour, startMinute)

	if strings.TrimSpace(event.EndTime) != "" {
		endClock, err := To24Hour(event.EndTime)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("end time: %w", err)
		}
		endHour, endMinute, err := splitClock(endClock)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("end time: %w", err)
		}
		if end := at(day, endHour, endMinute); !end.Before(start) {
			return start, end, nil
		}
	}

	// One hour later on the same day; there is no rollover past midnight.
	endHour := startHour + 1
	if endHour > 23 {
		return time.Time{}, time.Time{}, fmt.Errorf("end hour %d past midnight", endHour)
	}
	return start, at(day, endHour, startMinute), nil
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
}

package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NoonClock stands in for a missing time.
const NoonClock = "12:00"

var (
	pmMarker       = regexp.MustCompile(`(?i)pm`)
	amMarker       = regexp.MustCompile(`(?i)am`)
	dottedMeridiem = strings.NewReplacer("p.m.", "pm", "P.M.", "PM", "a.m.", "am", "A.M.", "AM")
)

// To24Hour converts a clock expression into HH:MM.
//
//	""        -> 12:00
//	"2:30 PM" -> 14:30
//	"12 PM"   -> 12:00
//	"12 AM"   -> 00:00
//	"9"       -> 09:00
func To24Hour(raw string) (string, error) {
	s := strings.TrimSpace(dottedMeridiem.Replace(raw))
	if s == "" {
		return NoonClock, nil
	}
	var (
		hour, minute int
		err          error
	)
	switch {
	case pmMarker.MatchString(s):
		hour, minute, err = splitClock(pmMarker.ReplaceAllString(s, ""))
		if err != nil {
			return "", err
		}
		if hour > 12 {
			return "", fmt.Errorf("hour %d out of range for pm", hour)
		}
		if hour != 12 {
			hour += 12
		}
	case amMarker.MatchString(s):
		hour, minute, err = splitClock(amMarker.ReplaceAllString(s, ""))
		if err != nil {
			return "", err
		}
		if hour > 12 {
			return "", fmt.Errorf("hour %d out of range for am", hour)
		}
		if hour == 12 {
			hour = 0
		}
	default:
		hour, minute, err = splitClock(s)
		if err != nil {
			return "", err
		}
	}
	if hour < 0 || hour > 23 {
		return "", fmt.Errorf("hour %d out of range", hour)
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// splitClock reads "H" or "H:MM"; a bare hour means minute zero.
func splitClock(s string) (int, int, error) {
	s = strings.TrimSpace(s)
	hourPart, minutePart, hasMinutes := strings.Cut(s, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(hourPart))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute := 0
	if hasMinutes {
		// Seconds, if any, are dropped.
		minutePart, _, _ = strings.Cut(minutePart, ":")
		minute, err = strconv.Atoi(strings.TrimSpace(minutePart))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid minute in %q: %w", s, err)
		}
	}
	if minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("minute %d out of range", minute)
	}
	return hour, minute, nil
}

package extract

import (
	"regexp"
)

const monthAbbrevPattern = `(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*`

// Tried in order; the first pattern with a match wins.
var datePatterns = []*regexp.Regexp{
	// 10/03/2025, 10-3-25
	regexp.MustCompile(`(?i)\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\b`),
	// 3 Oct 2025
	regexp.MustCompile(`(?i)\b(\d{1,2}\s+` + monthAbbrevPattern + `\s+\d{2,4})\b`),
	// Friday, 3 October
	regexp.MustCompile(`(?i)\b((?:Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)[,\s]+\d{1,2}\s+` + monthAbbrevPattern + `)\b`),
	// Oct 3, 2025
	regexp.MustCompile(`(?i)\b(` + monthAbbrevPattern + `\.?\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4})\b`),
}

var timePatterns = []*regexp.Regexp{
	// 2:30 PM
	regexp.MustCompile(`(?i)\b(\d{1,2}:\d{2}\s*(?:AM|PM))\b`),
	// 2 PM
	regexp.MustCompile(`(?i)\b(\d{1,2}\s*(?:AM|PM))\b`),
	// 14:30
	regexp.MustCompile(`\b(\d{1,2}:\d{2})\b`),
}

// clockOrDateFragment rules a line out as a title candidate.
var clockOrDateFragment = regexp.MustCompile(`\d{1,2}[:/]\d{2}`)

// FindDate returns the first date fragment found in text, verbatim.
func FindDate(text string) string {
	return firstMatch(datePatterns, text)
}

// FindTime returns the first clock expression found in text, verbatim.
func FindTime(text string) string {
	return firstMatch(timePatterns, text)
}

// HasDateOrTime reports whether line matches any date or time pattern.
func HasDateOrTime(line string) bool {
	for _, re := range datePatterns {
		if re.MatchString(line) {
			return true
		}
	}
	for _, re := range timePatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func firstMatch(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

package enhance

import (
	"fmt"
	"time"
)

const currentDateLayout = "Monday, January 2, 2006"

const promptTemplate = `You extract calendar events from text recognized in a photo or screenshot of an event notice.
The OCR output may contain recognition errors, stray characters and unrelated text.

Today is %s. Use it to resolve relative or incomplete dates ("tomorrow", "Friday", "Oct 3").

Text:
"""
%s
"""

Reply with exactly one JSON object and nothing else, using this schema.
Every value is a string or null; use null for anything the text does not support.
{
  "title": string | null,        // short event name
  "date": string | null,         // "Month D, YYYY", e.g. "October 3, 2025"
  "start_time": string | null,   // "H:MM AM/PM", e.g. "2:30 PM"
  "end_time": string | null,     // "H:MM AM/PM"
  "timezone": string | null,     // IANA identifier, e.g. "America/New_York"
  "location": string | null,     // venue, room or address
  "description": string | null,  // up to three short lines
  "duration": string | null,     // e.g. "1 hour", "90 minutes"
  "confidence": "High" | "Medium" | "Low" | null
}`

// BuildPrompt renders the enhancement prompt for rawText.
func BuildPrompt(rawText string, now time.Time) string {
	return fmt.Sprintf(promptTemplate, now.Format(currentDateLayout), rawText)
}

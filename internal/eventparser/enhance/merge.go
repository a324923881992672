package enhance

import (
	"picsync/backend/internal/eventparser/core"
)

// Reply is the enhancement payload. A nil field means "no opinion".
type Reply struct {
	Title       *string `json:"title"`
	Date        *string `json:"date"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Time        *string `json:"time"`
	TimeZone    *string `json:"timezone"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Duration    *string `json:"duration"`
	Confidence  *string `json:"confidence" validate:"omitnil,oneof=High Medium Low"`
}

// Merge overlays reply on base field by field: a non-nil value replaces the
// baseline value, nil keeps it. base is not modified.
func Merge(base core.CalendarEvent, reply Reply) core.CalendarEvent {
	out := base
	pick(&out.Title, reply.Title)
	pick(&out.Date, reply.Date)
	pick(&out.EndTime, reply.EndTime)
	pick(&out.TimeZone, reply.TimeZone)
	pick(&out.Location, reply.Location)
	pick(&out.Description, reply.Description)
	pick(&out.Duration, reply.Duration)

	switch {
	case reply.StartTime != nil:
		out.Time = *reply.StartTime
		out.StartTime = *reply.StartTime
	case reply.Time != nil:
		out.Time = *reply.Time
	}

	if reply.Confidence != nil {
		out.Confidence = core.Confidence(*reply.Confidence)
	}
	return out
}

func pick(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

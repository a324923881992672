// Package ics renders a built event as an iCalendar document.
package ics

import (
	"bytes"
	"io"
	"time"

	"picsync/backend/internal/eventparser/core"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

const (
	productID   = "-//PicSync//Event Export//EN"
	ContentType = "text/calendar; charset=utf-8"
)

// Encode writes result as a VCALENDAR with one VEVENT. Start and end carry the
// normalized zone as TZID.
func Encode(w io.Writer, result core.Result, now time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, uuid.NewString()+"@picsync")
	event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	event.Props.Set(localDateTime(ical.PropDateTimeStart, result.Range.Start, result.Range.TimeZone))
	event.Props.Set(localDateTime(ical.PropDateTimeEnd, result.Range.End, result.Range.TimeZone))

	e := result.Event
	if e.Title != "" {
		event.Props.SetText(ical.PropSummary, e.Title)
	}
	if e.Location != "" {
		event.Props.SetText(ical.PropLocation, e.Location)
	}
	if e.Description != "" {
		event.Props.SetText(ical.PropDescription, e.Description)
	}
	if result.CalendarURL != "" {
		link := ical.NewProp(ical.PropURL)
		link.SetValueType(ical.ValueURI)
		link.Value = result.CalendarURL
		event.Props.Set(link)
	}

	cal.Children = append(cal.Children, event.Component)
	return ical.NewEncoder(w).Encode(cal)
}

// Render is Encode into a byte slice.
func Render(result core.Result, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, result, now); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func localDateTime(name, value, tz string) *ical.Prop {
	prop := ical.NewProp(name)
	prop.SetValueType(ical.ValueDateTime)
	prop.Value = value
	if tz != "" {
		prop.Params.Set(ical.ParamTimezoneID, tz)
	}
	return prop
}

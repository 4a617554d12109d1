package export

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
)

// CalendarEntry is one VEVENT of an iCalendar document.
type CalendarEntry struct {
	UID         string
	Title       string
	Description string
	Category    string
	Location    string
	Start       time.Time
	// End defaults to Start plus one day.
	End time.Time
}

// ICSExporter renders entries as an RFC 5545 calendar.
type ICSExporter struct {
	productID string
	name      string
	now       func() time.Time
}

// NewICSExporter builds an exporter advertising name as the calendar name.
func NewICSExporter(name string) *ICSExporter {
	return &ICSExporter{
		productID: "-//AiNa//Calendrier//FR",
		name:      name,
		now:       time.Now,
	}
}

// ContentType of the rendered document.
func (e *ICSExporter) ContentType() string { return "text/calendar; charset=utf-8" }

// Render serializes entries. Times are written in UTC and text values are
// escaped by the encoder.
func (e *ICSExporter) Render(entries []CalendarEntry) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(e.productID)
	if e.name != "" {
		cal.SetName(e.name)
		cal.SetXWRCalName(e.name)
	}

	stamp := e.now().UTC()
	for _, entry := range entries {
		if entry.UID == "" {
			return nil, fmt.Errorf("calendar entry %q has no uid", entry.Title)
		}
		end := entry.End
		if end.IsZero() || end.Before(entry.Start) {
			end = entry.Start.AddDate(0, 0, 1)
		}

		event := cal.AddEvent(entry.UID)
		event.SetDtStampTime(stamp)
		event.SetStartAt(entry.Start.UTC())
		event.SetEndAt(end.UTC())
		event.SetSummary(entry.Title)
		if entry.Description != "" {
			event.SetDescription(entry.Description)
		}
		if entry.Location != "" {
			event.SetLocation(entry.Location)
		}
		if entry.Category != "" {
			event.AddProperty(ical.ComponentPropertyCategories, entry.Category)
		}
	}
	return []byte(cal.Serialize()), nil
}

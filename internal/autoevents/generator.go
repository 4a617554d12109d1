package autoevents

import (
	"sort"
	"time"

	"github.com/aina-app/aina-api/internal/models"
)

// GenerateYear returns every automatic event of year sorted by date. Events
// sharing a date keep their catalog order.
func GenerateYear(year int, loc *time.Location) []models.AutoEvent {
	if loc == nil {
		loc = time.UTC
	}
	events := make([]models.AutoEvent, 0, len(fixedCatalog)+len(easterBased)+4)
	for _, entry := range fixedCatalog {
		events = append(events, entry.At(year, loc))
	}
	events = append(events, movableHolidays(year, loc)...)
	events = append(events, commercialDates(year, loc)...)

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events
}

// GenerateRange returns the automatic events dated within [from, to], both
// bounds inclusive and compared as calendar dates in from's location.
func GenerateRange(from, to time.Time) []models.AutoEvent {
	loc := from.Location()
	start := StartOfDay(from)
	end := StartOfDay(to.In(loc))
	if end.Before(start) {
		return []models.AutoEvent{}
	}
	out := make([]models.AutoEvent, 0)
	for year := start.Year(); year <= end.Year(); year++ {
		for _, ev := range GenerateYear(year, loc) {
			if ev.Date.Before(start) || ev.Date.After(end) {
				continue
			}
			out = append(out, ev)
		}
	}
	return out
}

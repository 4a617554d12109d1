package autoevents

import (
	"sort"
	"time"

	"github.com/aina-app/aina-api/internal/models"
)

// DefaultDaysAhead is the rolling horizon used when none is given.
const DefaultDaysAhead = 30

// StartOfDay truncates t to local midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts calendar days from from to to. Both are read as dates in
// from's location, so DST shifts never add or lose a day.
func DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.In(from.Location()).Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// Upcoming returns automatic events dated between today and today+daysAhead
// (inclusive), where today is now truncated to midnight in now's location.
// Results are sorted by DaysUntil.
func Upcoming(now time.Time, daysAhead int) []models.UpcomingEvent {
	if daysAhead < 0 {
		daysAhead = DefaultDaysAhead
	}
	today := StartOfDay(now)
	end := today.AddDate(0, 0, daysAhead)

	candidates := append(GenerateYear(today.Year(), today.Location()), GenerateYear(today.Year()+1, today.Location())...)

	out := make([]models.UpcomingEvent, 0)
	for _, ev := range candidates {
		if ev.Date.Before(today) || ev.Date.After(end) {
			continue
		}
		out = append(out, models.UpcomingEvent{AutoEvent: ev, DaysUntil: DaysBetween(today, ev.Date)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysUntil < out[j].DaysUntil
	})
	return out
}

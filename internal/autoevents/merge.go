package autoevents

import (
	"fmt"
	"sort"
	"time"

	"github.com/aina-app/aina-api/internal/models"
)

// FromAuto converts a generated event into a calendar item.
func FromAuto(ev models.AutoEvent) models.CalendarItem {
	key := HiddenKey(ev.Title, ev.Date)
	return models.CalendarItem{
		ID:          "auto-" + key,
		Key:         key,
		Title:       ev.Title,
		Description: ev.Description,
		Date:        ev.Date,
		Type:        ev.Type,
		Icon:        ev.Icon,
		Source:      models.EventSourceAuto,
		SuggestPost: ev.SuggestPost,
	}
}

// FromUpcoming converts an upcoming event, keeping its day count.
func FromUpcoming(ev models.UpcomingEvent) models.CalendarItem {
	item := FromAuto(ev.AutoEvent)
	days := ev.DaysUntil
	item.DaysUntil = &days
	return item
}

// FromLocal converts a third-party event. Its date is read in loc so the
// hidden key matches the calendar day shown to the user.
func FromLocal(ev models.LocalEvent, loc *time.Location) models.CalendarItem {
	date := ev.EventDate
	if loc != nil {
		date = date.In(loc)
	}
	key := HiddenKey(ev.Title, date)
	item := models.CalendarItem{
		ID:          fmt.Sprintf("local-%s", ev.ID),
		Key:         key,
		Title:       ev.Title,
		Description: ev.Description,
		Date:        date,
		Type:        models.EventTypeLocal,
		Icon:        "📍",
		Source:      models.EventSourceLocal,
		SuggestPost: true,
		Location:    ev.Location,
		City:        ev.City,
	}
	if ev.EndDate != nil {
		end := *ev.EndDate
		if loc != nil {
			end = end.In(loc)
		}
		item.EndDate = &end
	}
	return item
}

// FromManual converts a user-created event. Manual items carry no hidden
// key: they can only be deleted, never hidden.
func FromManual(ev models.ManualEvent, loc *time.Location) models.CalendarItem {
	date := ev.EventDate
	if loc != nil {
		date = date.In(loc)
	}
	item := models.CalendarItem{
		ID:       ev.ID,
		Title:    ev.Title,
		Date:     date,
		Type:     models.EventTypeManual,
		Category: ev.EventType,
		Icon:     "📌",
		Source:   models.EventSourceManual,
		PostID:   ev.PostID,
	}
	if ev.Description != nil {
		item.Description = *ev.Description
	}
	return item
}

// MergeInput groups the three event streams of a calendar view.
type MergeInput struct {
	Auto   []models.CalendarItem
	Local  []models.CalendarItem
	Manual []models.CalendarItem
	Hidden HiddenSet
	// Limit truncates the sorted result when positive.
	Limit int
}

// Merge combines the streams into one list sorted by date:
//   - suggested (auto, then local) items whose key is hidden are dropped;
//   - suggested items sharing a normalized title and calendar date are
//     collapsed, the first occurrence wins;
//   - manual items are always kept untouched.
func Merge(in MergeInput) []models.CalendarItem {
	out := make([]models.CalendarItem, 0, len(in.Manual)+len(in.Auto)+len(in.Local))
	out = append(out, in.Manual...)

	seen := make(map[string]struct{}, len(in.Auto)+len(in.Local))
	for _, stream := range [][]models.CalendarItem{in.Auto, in.Local} {
		for _, item := range stream {
			if item.IsManual() {
				out = append(out, item)
				continue
			}
			key := item.Key
			if key == "" {
				key = HiddenKey(item.Title, item.Date)
				item.Key = key
			}
			if in.Hidden.Has(key) {
				continue
			}
			identity := NormalizeTitle(item.Title) + "|" + ISODate(item.Date)
			if _, dup := seen[identity]; dup {
				continue
			}
			seen[identity] = struct{}{}
			out = append(out, item)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	if in.Limit > 0 && len(out) > in.Limit {
		out = out[:in.Limit]
	}
	return out
}

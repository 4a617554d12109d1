package autoevents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aina-app/aina-api/internal/models"
)

func autoItem(title string, date time.Time) models.CalendarItem {
	return FromAuto(models.AutoEvent{Date: date, Title: title, Type: models.EventTypeFestive, Icon: "x", SuggestPost: true})
}

func TestMergeDropsHiddenSuggestionsOnly(t *testing.T) {
	day := time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC)
	manual := FromManual(models.ManualEvent{ID: "m1", Title: "Fête de la Musique", EventDate: day, EventType: "promo"}, time.UTC)
	auto := autoItem("Fête de la Musique", day)

	out := Merge(MergeInput{
		Auto:   []models.CalendarItem{auto},
		Manual: []models.CalendarItem{manual},
		Hidden: NewHiddenSet(auto.Key),
	})
	require.Len(t, out, 1)
	assert.Equal(t, "m1", out[0].ID)
	assert.Equal(t, models.EventSourceManual, out[0].Source)
}

func TestMergeDeduplicatesSuggestions(t *testing.T) {
	day := time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC)
	auto := autoItem("Fête de la Musique", day)
	local := FromLocal(models.LocalEvent{ID: "oa-1", Title: " fête de la musique ", EventDate: day.Add(18 * time.Hour), City: "Lyon"}, time.UTC)
	manual := FromManual(models.ManualEvent{ID: "m1", Title: "Fête de la Musique", EventDate: day, EventType: "event"}, time.UTC)

	out := Merge(MergeInput{
		Auto:   []models.CalendarItem{auto},
		Local:  []models.CalendarItem{local},
		Manual: []models.CalendarItem{manual},
	})
	require.Len(t, out, 2)
	assert.Equal(t, "m1", out[0].ID)
	assert.Equal(t, auto.ID, out[1].ID)
}

func TestMergeKeepsSameTitleOnOtherDates(t *testing.T) {
	this := autoItem("Noël", time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC))
	next := autoItem("Noël", time.Date(2026, time.December, 25, 0, 0, 0, 0, time.UTC))

	out := Merge(MergeInput{Auto: []models.CalendarItem{next, this}})
	require.Len(t, out, 2)
	assert.Equal(t, 2025, out[0].Date.Year())
	assert.Equal(t, 2026, out[1].Date.Year())
}

func TestMergeSortsAndLimits(t *testing.T) {
	base := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	items := []models.CalendarItem{
		autoItem("C", base.AddDate(0, 0, 3)),
		autoItem("A", base.AddDate(0, 0, 1)),
		autoItem("B", base.AddDate(0, 0, 2)),
	}
	manual := FromManual(models.ManualEvent{ID: "m", Title: "Z", EventDate: base}, time.UTC)

	out := Merge(MergeInput{Auto: items, Manual: []models.CalendarItem{manual}, Limit: 3})
	require.Len(t, out, 3)
	assert.Equal(t, []string{"Z", "A", "B"}, []string{out[0].Title, out[1].Title, out[2].Title})

	all := Merge(MergeInput{Auto: items})
	assert.Len(t, all, 3)
}

func TestMergeEmpty(t *testing.T) {
	out := Merge(MergeInput{})
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestFromLocalConvertsToLocation(t *testing.T) {
	loc := paris(t)
	start := time.Date(2025, time.June, 20, 22, 30, 0, 0, time.UTC)
	item := FromLocal(models.LocalEvent{ID: "42", Title: "Concert", EventDate: start}, loc)

	assert.Equal(t, "local-42", item.ID)
	assert.Equal(t, "concert-2025-06-21", item.Key)
	assert.Equal(t, models.EventTypeLocal, item.Type)
	assert.True(t, item.SuggestPost)
}

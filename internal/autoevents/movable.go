package autoevents

import (
	"strings"
	"time"

	"github.com/aina-app/aina-api/internal/models"
)

// Easter returns Gregorian Easter Sunday for year using the anonymous
// Gregorian (Meeus/Jones/Butcher) algorithm. Valid for years >= 1583.
func Easter(year int, loc *time.Location) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}

// NthWeekday returns the n-th occurrence (1-based) of weekday in month.
func NthWeekday(year int, month time.Month, weekday time.Weekday, n int, loc *time.Location) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return time.Date(year, month, 1+offset+(n-1)*7, 0, 0, 0, 0, loc)
}

// LastWeekday walks back from the last day of month until it reaches weekday.
func LastWeekday(year int, month time.Month, weekday time.Weekday, loc *time.Location) time.Time {
	date := time.Date(year, month+1, 0, 0, 0, 0, 0, loc)
	for date.Weekday() != weekday {
		date = date.AddDate(0, 0, -1)
	}
	return date
}

type movableEntry struct {
	offset      int
	title       string
	icon        string
	description string
}

var easterBased = []movableEntry{
	{0, "Pâques", "🐣", "Dimanche de Pâques, chocolats et chasses aux œufs"},
	{1, "Lundi de Pâques", "🥚", "Jour férié du lundi de Pâques"},
	{39, "Ascension", "☁️", "Jeudi de l'Ascension, souvent suivi d'un pont"},
	{50, "Lundi de Pentecôte", "🕊️", "Jour férié de la Pentecôte"},
}

// movableHolidays returns the Easter-derived public holidays for year.
// Only the Easter days themselves are flagged for post suggestions.
func movableHolidays(year int, loc *time.Location) []models.AutoEvent {
	easter := Easter(year, loc)
	out := make([]models.AutoEvent, 0, len(easterBased))
	for _, entry := range easterBased {
		out = append(out, models.AutoEvent{
			Date:        easter.AddDate(0, 0, entry.offset),
			Title:       entry.title,
			Type:        models.EventTypeHoliday,
			Icon:        entry.icon,
			Description: entry.description,
			SuggestPost: strings.Contains(entry.title, "Pâques"),
		})
	}
	return out
}

// BlackFriday returns the Friday following the fourth Thursday of November.
func BlackFriday(year int, loc *time.Location) time.Time {
	return NthWeekday(year, time.November, time.Thursday, 4, loc).AddDate(0, 0, 1)
}

// commercialDates returns the weekday-anchored commercial events for year.
// Mother's Day is taken as the last Sunday of May.
func commercialDates(year int, loc *time.Location) []models.AutoEvent {
	blackFriday := BlackFriday(year, loc)
	return []models.AutoEvent{
		{
			Date:        LastWeekday(year, time.May, time.Sunday, loc),
			Title:       "Fête des Mères",
			Type:        models.EventTypeCommercial,
			Icon:        "💐",
			Description: "Fête des mères, pensez aux idées cadeaux",
			SuggestPost: true,
		},
		{
			Date:        NthWeekday(year, time.June, time.Sunday, 3, loc),
			Title:       "Fête des Pères",
			Type:        models.EventTypeCommercial,
			Icon:        "👔",
			Description: "Fête des pères, pensez aux idées cadeaux",
			SuggestPost: true,
		},
		{
			Date:        blackFriday,
			Title:       "Black Friday",
			Type:        models.EventTypeCommercial,
			Icon:        "🖤",
			Description: "Journée de promotions exceptionnelles",
			SuggestPost: true,
		},
		{
			Date:        blackFriday.AddDate(0, 0, 3),
			Title:       "Cyber Monday",
			Type:        models.EventTypeCommercial,
			Icon:        "💻",
			Description: "Promotions en ligne du lundi après le Black Friday",
			SuggestPost: true,
		},
	}
}

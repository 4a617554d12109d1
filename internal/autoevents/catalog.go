// Package autoevents computes the yearly commercial and holiday calendar
// suggested to shopkeepers and merges it with user and local events.
package autoevents

import (
	"time"

	"github.com/aina-app/aina-api/internal/models"
)

// FixedEntry is a yearly event that always falls on the same month-day.
type FixedEntry struct {
	Month       time.Month
	Day         int
	Title       string
	Type        models.EventType
	Icon        string
	Description string
	SuggestPost bool
}

var fixedCatalog = []FixedEntry{
	// Public holidays
	{time.January, 1, "Jour de l'An", models.EventTypeHoliday, "🎆", "Premier jour de l'année, idéal pour présenter vos vœux à vos clients", true},
	{time.May, 1, "Fête du Travail", models.EventTypeHoliday, "💐", "Journée internationale des travailleurs, tradition du muguet", true},
	{time.May, 8, "Victoire 1945", models.EventTypeHoliday, "🕊️", "Commémoration de la fin de la Seconde Guerre mondiale en Europe", false},
	{time.July, 14, "Fête nationale", models.EventTypeHoliday, "🇫🇷", "Commémoration de la prise de la Bastille", true},
	{time.August, 15, "Assomption", models.EventTypeHoliday, "⛪", "Jour férié de l'Assomption", false},
	{time.November, 1, "Toussaint", models.EventTypeHoliday, "🕯️", "Jour férié de la Toussaint", false},
	{time.November, 11, "Armistice 1918", models.EventTypeHoliday, "🎖️", "Commémoration de l'armistice de la Première Guerre mondiale", false},
	{time.December, 25, "Noël", models.EventTypeHoliday, "🎄", "Fête de Noël, pic des achats de cadeaux", true},

	// Festive dates
	{time.February, 14, "Saint-Valentin", models.EventTypeFestive, "❤️", "Fête des amoureux, occasion idéale pour des offres en duo", true},
	{time.March, 17, "Saint-Patrick", models.EventTypeFestive, "☘️", "Fête irlandaise, tout en vert", true},
	{time.April, 1, "Poisson d'avril", models.EventTypeFestive, "🐟", "Journée des farces, misez sur l'humour", true},
	{time.October, 31, "Halloween", models.EventTypeFestive, "🎃", "Fête d'Halloween, décorations et animations", true},
	{time.December, 24, "Réveillon de Noël", models.EventTypeFestive, "🎅", "Veille de Noël, derniers achats de cadeaux", true},
	{time.December, 31, "Réveillon du Nouvel An", models.EventTypeFestive, "🥂", "Dernier soir de l'année, préparez les fêtes", true},

	// Seasons
	{time.March, 20, "Printemps", models.EventTypeSeasonal, "🌸", "Équinoxe de printemps, renouvelez vos vitrines", true},
	{time.June, 21, "Été", models.EventTypeSeasonal, "☀️", "Solstice d'été, début de la saison estivale", true},
	{time.September, 22, "Automne", models.EventTypeSeasonal, "🍂", "Équinoxe d'automne, nouvelles collections", true},
	{time.December, 21, "Hiver", models.EventTypeSeasonal, "❄️", "Solstice d'hiver, ambiance cocooning", true},

	// Commercial dates
	{time.January, 8, "Soldes d'hiver", models.EventTypeCommercial, "🏷️", "Début des soldes d'hiver", true},
	{time.June, 25, "Soldes d'été", models.EventTypeCommercial, "🛍️", "Début des soldes d'été", true},
	{time.September, 1, "Rentrée scolaire", models.EventTypeCommercial, "🎒", "Retour en classe, fournitures et nouvelles routines", true},

	// Cultural days
	{time.June, 21, "Fête de la Musique", models.EventTypeFestive, "🎵", "Concerts gratuits partout en France", true},
	{time.September, 20, "Journées du Patrimoine", models.EventTypeFestive, "🏛️", "Ouverture exceptionnelle des monuments et lieux historiques", true},
	{time.April, 22, "Jour de la Terre", models.EventTypeSeasonal, "🌍", "Journée mondiale de sensibilisation à l'environnement", true},
}

// Catalog returns a copy of the fixed-date catalog in declaration order.
func Catalog() []FixedEntry {
	out := make([]FixedEntry, len(fixedCatalog))
	copy(out, fixedCatalog)
	return out
}

// At instantiates the entry for year in loc.
func (e FixedEntry) At(year int, loc *time.Location) models.AutoEvent {
	return models.AutoEvent{
		Date:        time.Date(year, e.Month, e.Day, 0, 0, 0, 0, loc),
		Title:       e.Title,
		Type:        e.Type,
		Icon:        e.Icon,
		Description: e.Description,
		SuggestPost: e.SuggestPost,
	}
}

package dto

import (
	"time"

	"github.com/aina-app/aina-api/internal/models"
)

// ManualEventRequest is the create/update payload of a user event.
type ManualEventRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	EventDate   time.Time `json:"event_date" validate:"required"`
	EventType   string    `json:"event_type" validate:"required,max=50"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	PostID      *string   `json:"post_id" validate:"omitempty,uuid"`
}

// DateRangeQuery captures optional start_date/end_date query parameters.
type DateRangeQuery struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// UpcomingQuery captures the dashboard query parameters.
type UpcomingQuery struct {
	Days  int
	Limit int
	// All keeps events not flagged for a post suggestion.
	All bool
}

// CalendarRange echoes the resolved window of a calendar response.
type CalendarRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// CalendarResponse is the merged calendar of a user.
type CalendarResponse struct {
	Range      CalendarRange         `json:"range"`
	Events     []models.CalendarItem `json:"events"`
	LocalCount int                   `json:"local_count"`
	// CacheHit tells whether the hidden-key set was served from cache.
	CacheHit bool `json:"-"`
}

// YearEventsResponse lists the automatic events of a year.
type YearEventsResponse struct {
	Year   int                `json:"year"`
	Events []models.AutoEvent `json:"events"`
}

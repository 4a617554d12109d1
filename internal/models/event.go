package models

import "time"

// EventType classifies calendar entries. The icon is display-only and never
// encoded into the title.
type EventType string

const (
	EventTypeHoliday    EventType = "holiday"
	EventTypeFestive    EventType = "festive"
	EventTypeCommercial EventType = "commercial"
	EventTypeSeasonal   EventType = "seasonal"
	EventTypeLocal      EventType = "local"
	EventTypeManual     EventType = "manual"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeHoliday, EventTypeFestive, EventTypeCommercial, EventTypeSeasonal, EventTypeLocal, EventTypeManual:
		return true
	default:
		return false
	}
}

// EventSource tells where a merged calendar item came from.
type EventSource string

const (
	EventSourceAuto   EventSource = "auto"
	EventSourceLocal  EventSource = "local"
	EventSourceManual EventSource = "manual"
)

// AutoEvent is a computed yearly event. It is never persisted.
type AutoEvent struct {
	Date        time.Time `json:"date"`
	Title       string    `json:"title"`
	Type        EventType `json:"type"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
	SuggestPost bool      `json:"suggest_post"`
}

// UpcomingEvent is an AutoEvent annotated with the number of days left.
type UpcomingEvent struct {
	AutoEvent
	DaysUntil int `json:"days_until"`
}

// ManualEvent is a user-created calendar entry stored in the events table.
type ManualEvent struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	EventDate   time.Time `db:"event_date" json:"event_date"`
	EventType   string    `db:"event_type" json:"event_type"`
	Description *string   `db:"description" json:"description,omitempty"`
	PostID      *string   `db:"post_id" json:"post_id,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// LocalEvent is a third-party event fetched per request from the local
// events source.
type LocalEvent struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	EventDate   time.Time  `json:"event_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Location    string     `json:"location,omitempty"`
	City        string     `json:"city,omitempty"`
	Department  string     `json:"department,omitempty"`
	Source      string     `json:"source"`
}

// HiddenEvent records that a user dismissed a suggested event.
type HiddenEvent struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	EventKey  string    `db:"event_key" json:"event_key"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CalendarItem is one entry of the merged calendar shown to a user.
type CalendarItem struct {
	ID          string      `json:"id"`
	Key         string      `json:"key,omitempty"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Date        time.Time   `json:"date"`
	EndDate     *time.Time  `json:"end_date,omitempty"`
	Type        EventType   `json:"type"`
	Category    string      `json:"category,omitempty"`
	Icon        string      `json:"icon,omitempty"`
	Source      EventSource `json:"source"`
	SuggestPost bool        `json:"suggest_post"`
	DaysUntil   *int        `json:"days_until,omitempty"`
	Location    string      `json:"location,omitempty"`
	City        string      `json:"city,omitempty"`
	PostID      *string     `json:"post_id,omitempty"`
}

// IsManual reports whether the item is owned by the user.
func (i CalendarItem) IsManual() bool {
	return i.Source == EventSourceManual
}

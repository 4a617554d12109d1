package models

import "time"

// NotificationTypeEventReminder flags reminders about upcoming suggested events.
const NotificationTypeEventReminder = "event_reminder"

// Notification is an in-app message stored for a user.
type Notification struct {
	ID        string     `db:"id" json:"id"`
	UserID    string     `db:"user_id" json:"user_id"`
	Type      string     `db:"type" json:"type"`
	Title     string     `db:"title" json:"title"`
	Message   string     `db:"message" json:"message"`
	EventKey  *string    `db:"event_key" json:"event_key,omitempty"`
	EventDate *time.Time `db:"event_date" json:"event_date,omitempty"`
	Read      bool       `db:"read" json:"read"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

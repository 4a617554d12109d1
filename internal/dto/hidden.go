package dto

import "time"

// HideEventRequest dismisses a suggested event. Date is an ISO calendar date.
type HideEventRequest struct {
	Title  string `json:"title" validate:"required"`
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Source string `json:"source" validate:"omitempty,oneof=auto local manual"`
}

// HiddenEventResponse describes one dismissed suggestion.
type HiddenEventResponse struct {
	Key       string     `json:"key"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

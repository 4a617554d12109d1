package dto

import "time"

// ExportFormat enumerates calendar export renderers.
type ExportFormat string

const (
	ExportFormatICS ExportFormat = "ics"
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportRequest selects the format and window of a calendar export.
type ExportRequest struct {
	Format    ExportFormat
	StartDate *time.Time
	EndDate   *time.Time
}

// ExportResult is a rendered calendar file.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}

// FeedResponse returns a signed iCalendar subscription URL.
type FeedResponse struct {
	URL       string    `json:"url"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

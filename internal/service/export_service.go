package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aina-app/aina-api/internal/dto"
	"github.com/aina-app/aina-api/internal/models"
	appErrors "github.com/aina-app/aina-api/pkg/errors"
	"github.com/aina-app/aina-api/pkg/export"
)

const defaultExportDays = 365

type calendarRanger interface {
	Range(ctx context.Context, userID string, from, to time.Time) (*dto.CalendarResponse, error)
	Today() time.Time
}

type icsRenderer interface {
	ContentType() string
	Render(entries []export.CalendarEntry) ([]byte, error)
}

type tableRenderer interface {
	ContentType() string
	Render(data export.Dataset) ([]byte, error)
}

// ExportService renders the merged calendar as iCalendar, CSV or PDF.
type ExportService struct {
	calendar calendarRanger
	ics      icsRenderer
	csv      tableRenderer
	pdf      tableRenderer
	loc      *time.Location
}

// NewExportService constructs the service.
func NewExportService(calendar calendarRanger, ics icsRenderer, csv, pdf tableRenderer, loc *time.Location) *ExportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ExportService{calendar: calendar, ics: ics, csv: csv, pdf: pdf, loc: loc}
}

// Export renders the user's calendar. Without bounds it covers the next
// twelve months.
func (s *ExportService) Export(ctx context.Context, userID string, req dto.ExportRequest) (*dto.ExportResult, error) {
	format := dto.ExportFormat(strings.ToLower(string(req.Format)))
	if format == "" {
		format = dto.ExportFormatICS
	}

	from := s.calendar.Today()
	if req.StartDate != nil {
		from = req.StartDate.In(s.loc)
	}
	to := from.AddDate(0, 0, defaultExportDays)
	if req.EndDate != nil {
		to = req.EndDate.In(s.loc)
	}
	if to.Before(from) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_date cannot be after end_date")
	}

	view, err := s.calendar.Range(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("aina-calendrier-%s_%s", view.Range.StartDate, view.Range.EndDate)
	switch format {
	case dto.ExportFormatICS:
		body, err := s.ics.Render(calendarEntries(view.Events))
		if err != nil {
			return nil, appErrors.Internal(err, "failed to render calendar")
		}
		return &dto.ExportResult{Filename: name + ".ics", ContentType: s.ics.ContentType(), Body: body}, nil
	case dto.ExportFormatCSV:
		body, err := s.csv.Render(s.dataset(view))
		if err != nil {
			return nil, appErrors.Internal(err, "failed to render csv")
		}
		return &dto.ExportResult{Filename: name + ".csv", ContentType: s.csv.ContentType(), Body: body}, nil
	case dto.ExportFormatPDF:
		body, err := s.pdf.Render(s.dataset(view))
		if err != nil {
			return nil, appErrors.Internal(err, "failed to render pdf")
		}
		return &dto.ExportResult{Filename: name + ".pdf", ContentType: s.pdf.ContentType(), Body: body}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be one of ics, csv, pdf")
	}
}

func calendarEntries(items []models.CalendarItem) []export.CalendarEntry {
	entries := make([]export.CalendarEntry, 0, len(items))
	for _, item := range items {
		entry := export.CalendarEntry{
			UID:         item.ID + "@aina",
			Title:       item.Title,
			Description: item.Description,
			Category:    string(item.Type),
			Location:    joinNonEmpty(", ", item.Location, item.City),
			Start:       item.Date,
		}
		if item.EndDate != nil {
			entry.End = *item.EndDate
		}
		entries = append(entries, entry)
	}
	return entries
}

func (s *ExportService) dataset(view *dto.CalendarResponse) export.Dataset {
	data := export.Dataset{
		Title:   fmt.Sprintf("Calendrier du %s au %s", view.Range.StartDate, view.Range.EndDate),
		Headers: []string{"Date", "Titre", "Type", "Source", "Lieu", "Description"},
		Rows:    make([][]string, 0, len(view.Events)),
	}
	for _, item := range view.Events {
		kind := string(item.Type)
		if item.Category != "" {
			kind = item.Category
		}
		data.Rows = append(data.Rows, []string{
			item.Date.In(s.loc).Format("02/01/2006"),
			item.Title,
			kind,
			string(item.Source),
			joinNonEmpty(", ", item.Location, item.City),
			item.Description,
		})
	}
	return data
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/aina-app/aina-api/internal/dto"
	"github.com/aina-app/aina-api/internal/models"
	appErrors "github.com/aina-app/aina-api/pkg/errors"
)

type eventRepository interface {
	ListByUser(ctx context.Context, userID string, from, to *time.Time) ([]models.ManualEvent, error)
	GetByID(ctx context.Context, id, userID string) (*models.ManualEvent, error)
	Create(ctx context.Context, event *models.ManualEvent) error
	Update(ctx context.Context, event *models.ManualEvent) error
	Delete(ctx context.Context, id, userID string) error
}

// CalendarService manages the events users add to their own calendar.
// Store failures are always surfaced to the caller.
type CalendarService struct {
	repo      eventRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCalendarService constructs the service.
func NewCalendarService(repo eventRepository, validate *validator.Validate, logger *zap.Logger) *CalendarService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{repo: repo, validator: validate, logger: logger}
}

// List returns the user's events within the optional range.
func (s *CalendarService) List(ctx context.Context, userID string, from, to *time.Time) ([]models.ManualEvent, error) {
	if userID == "" {
		return nil, appErrors.ErrUnauthorized
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_date cannot be after end_date")
	}
	events, err := s.repo.ListByUser(ctx, userID, from, to)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list events")
	}
	return events, nil
}

// Get returns one event of the user.
func (s *CalendarService) Get(ctx context.Context, userID, id string) (*models.ManualEvent, error) {
	event, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Internal(err, "failed to get event")
	}
	return event, nil
}

// Create stores a new event for the user.
func (s *CalendarService) Create(ctx context.Context, userID string, req dto.ManualEventRequest) (*models.ManualEvent, error) {
	if userID == "" {
		return nil, appErrors.ErrUnauthorized
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}
	event := &models.ManualEvent{UserID: userID}
	applyManualEvent(event, req)
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, appErrors.Internal(err, "failed to create event")
	}
	s.logger.Info("event created", zap.String("user_id", userID), zap.String("event_id", event.ID))
	return event, nil
}

// Update replaces the editable fields of an event.
func (s *CalendarService) Update(ctx context.Context, userID, id string, req dto.ManualEventRequest) (*models.ManualEvent, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	event, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	applyManualEvent(event, req)
	if err := s.repo.Update(ctx, event); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Internal(err, "failed to update event")
	}
	return event, nil
}

// Delete removes an event of the user.
func (s *CalendarService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return appErrors.Internal(err, "failed to delete event")
	}
	s.logger.Info("event deleted", zap.String("user_id", userID), zap.String("event_id", id))
	return nil
}

func (s *CalendarService) validate(req dto.ManualEventRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	if strings.TrimSpace(req.Title) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "title is required")
	}
	return nil
}

func applyManualEvent(event *models.ManualEvent, req dto.ManualEventRequest) {
	event.Title = strings.TrimSpace(req.Title)
	event.EventDate = req.EventDate
	event.EventType = strings.TrimSpace(req.EventType)
	event.Description = req.Description
	event.PostID = req.PostID
}

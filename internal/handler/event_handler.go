package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aina-app/aina-api/internal/dto"
	"github.com/aina-app/aina-api/internal/models"
	appErrors "github.com/aina-app/aina-api/pkg/errors"
	"github.com/aina-app/aina-api/pkg/response"
)

type aggregationService interface {
	Upcoming(ctx context.Context, userID string, q dto.UpcomingQuery) (*dto.CalendarResponse, error)
	Calendar(ctx context.Context, userID string, q dto.DateRangeQuery) (*dto.CalendarResponse, error)
	Year(year int) (*dto.YearEventsResponse, error)
}

type manualEventService interface {
	List(ctx context.Context, userID string, from, to *time.Time) ([]models.ManualEvent, error)
	Get(ctx context.Context, userID, id string) (*models.ManualEvent, error)
	Create(ctx context.Context, userID string, req dto.ManualEventRequest) (*models.ManualEvent, error)
	Update(ctx context.Context, userID, id string, req dto.ManualEventRequest) (*models.ManualEvent, error)
	Delete(ctx context.Context, userID, id string) error
}

// EventHandler serves the merged calendar views and the user's own events.
type EventHandler struct {
	aggregation aggregationService
	events      manualEventService
	loc         *time.Location
}

// NewEventHandler constructs the handler. Dates in queries and payloads are
// read in loc.
func NewEventHandler(aggregation aggregationService, events manualEventService, loc *time.Location) *EventHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &EventHandler{aggregation: aggregation, events: events, loc: loc}
}

// Upcoming godoc
// @Summary Upcoming events for the dashboard
// @Tags Events
// @Produce json
// @Param days query int false "Window length in days (default 30, max 366)"
// @Param limit query int false "Maximum number of events"
// @Param all query bool false "Include events without a post suggestion"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /events/upcoming [get]
func (h *EventHandler) Upcoming(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	days, err := queryInt(c, "days")
	if err != nil {
		response.Error(c, err)
		return
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		response.Error(c, err)
		return
	}
	all, err := queryBool(c, "all")
	if err != nil {
		response.Error(c, err)
		return
	}

	view, err := h.aggregation.Upcoming(c.Request.Context(), userID, dto.UpcomingQuery{Days: days, Limit: limit, All: all})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil, withCalendarMeta(c, view))
}

// Calendar godoc
// @Summary Merged calendar between two dates
// @Tags Events
// @Produce json
// @Param start_date query string false "Start date (YYYY-MM-DD), defaults to the first day of the month"
// @Param end_date query string false "End date (YYYY-MM-DD), defaults to the last day of the month"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /events/calendar [get]
func (h *EventHandler) Calendar(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	q, err := parseDateRange(c, h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}
	view, err := h.aggregation.Calendar(c.Request.Context(), userID, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil, withCalendarMeta(c, view))
}

// Year godoc
// @Summary Automatic events of a year
// @Tags Events
// @Produce json
// @Param year path int true "Year"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /events/year/{year} [get]
func (h *EventHandler) Year(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "year must be a number"))
		return
	}
	resp, err := h.aggregation.Year(year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// List godoc
// @Summary List the user's events
// @Tags Events
// @Produce json
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	q, err := parseDateRange(c, h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}
	var to *time.Time
	if q.EndDate != nil {
		end := q.EndDate.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &end
	}
	events, err := h.events.List(c.Request.Context(), userID, q.StartDate, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}

// Get godoc
// @Summary Get one of the user's events
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	event, err := h.events.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// Create godoc
// @Summary Add an event to the user's calendar
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body manualEventPayload true "Event payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	req, err := h.bindManualEvent(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	event, err := h.events.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}

// Update godoc
// @Summary Update one of the user's events
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param payload body manualEventPayload true "Event payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	req, err := h.bindManualEvent(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	event, err := h.events.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// Delete godoc
// @Summary Delete one of the user's events
// @Tags Events
// @Param id path string true "Event ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.events.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// manualEventPayload accepts event_date as YYYY-MM-DD or RFC 3339.
type manualEventPayload struct {
	Title       string  `json:"title"`
	EventDate   string  `json:"event_date"`
	EventType   string  `json:"event_type"`
	Description *string `json:"description"`
	PostID      *string `json:"post_id"`
}

func (h *EventHandler) bindManualEvent(c *gin.Context) (dto.ManualEventRequest, error) {
	var payload manualEventPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		return dto.ManualEventRequest{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid JSON payload")
	}
	req := dto.ManualEventRequest{
		Title:       payload.Title,
		EventType:   payload.EventType,
		Description: payload.Description,
		PostID:      payload.PostID,
	}
	raw := strings.TrimSpace(payload.EventDate)
	if raw == "" {
		return req, nil
	}
	if date, err := time.ParseInLocation(dateLayout, raw, h.loc); err == nil {
		req.EventDate = date
		return req, nil
	}
	date, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return req, appErrors.Clone(appErrors.ErrValidation, "event_date must be YYYY-MM-DD or RFC 3339")
	}
	req.EventDate = date
	return req, nil
}

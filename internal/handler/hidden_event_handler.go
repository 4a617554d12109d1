package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aina-app/aina-api/internal/dto"
	appErrors "github.com/aina-app/aina-api/pkg/errors"
	"github.com/aina-app/aina-api/pkg/response"
)

type hiddenEventService interface {
	List(ctx context.Context, userID string) ([]dto.HiddenEventResponse, error)
	Hide(ctx context.Context, userID string, req dto.HideEventRequest) (*dto.HiddenEventResponse, error)
	Restore(ctx context.Context, userID, key string) error
}

// HiddenEventHandler lets users dismiss and restore suggested events.
type HiddenEventHandler struct {
	service hiddenEventService
}

// NewHiddenEventHandler constructs the handler.
func NewHiddenEventHandler(service hiddenEventService) *HiddenEventHandler {
	return &HiddenEventHandler{service: service}
}

// List godoc
// @Summary List dismissed suggestions
// @Tags Hidden events
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /events/hidden [get]
func (h *HiddenEventHandler) List(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	items, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Hide godoc
// @Summary Dismiss a suggested event
// @Tags Hidden events
// @Accept json
// @Produce json
// @Param payload body dto.HideEventRequest true "Event to hide"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /events/hidden [post]
func (h *HiddenEventHandler) Hide(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.HideEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid JSON payload"))
		return
	}
	resp, err := h.service.Hide(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resp)
}

// Restore godoc
// @Summary Restore a dismissed suggestion
// @Tags Hidden events
// @Param key path string true "Hidden event key"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /events/hidden/{key} [delete]
func (h *HiddenEventHandler) Restore(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.Restore(c.Request.Context(), userID, c.Param("key")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

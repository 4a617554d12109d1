package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aina-app/aina-api/internal/dto"
	appErrors "github.com/aina-app/aina-api/pkg/errors"
	"github.com/aina-app/aina-api/pkg/response"
)

type exportService interface {
	Export(ctx context.Context, userID string, req dto.ExportRequest) (*dto.ExportResult, error)
}

// ExportHandler downloads the merged calendar.
type ExportHandler struct {
	service exportService
	loc     *time.Location
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService, loc *time.Location) *ExportHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ExportHandler{service: service, loc: loc}
}

// Export godoc
// @Summary Export the merged calendar
// @Tags Export
// @Produce text/calendar
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "ics (default), csv or pdf"
// @Param start_date query string false "Start date (YYYY-MM-DD), defaults to today"
// @Param end_date query string false "End date (YYYY-MM-DD), defaults to one year after start"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /events/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
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
	result, err := h.service.Export(c.Request.Context(), userID, dto.ExportRequest{
		Format:    dto.ExportFormat(c.Query("format")),
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.ContentType, result.Filename, result.Body)
}

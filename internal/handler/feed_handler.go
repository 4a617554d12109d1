package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aina-app/aina-api/internal/dto"
	appErrors "github.com/aina-app/aina-api/pkg/errors"
	"github.com/aina-app/aina-api/pkg/response"
)

type feedService interface {
	Issue(userID, baseURL string) (*dto.FeedResponse, error)
	Render(ctx context.Context, token string) (*dto.ExportResult, error)
}

// FeedHandler issues and serves iCalendar subscription feeds.
type FeedHandler struct {
	service   feedService
	apiPrefix string
}

// NewFeedHandler constructs the handler. Feed URLs are rooted at the
// request origin followed by apiPrefix.
func NewFeedHandler(service feedService, apiPrefix string) *FeedHandler {
	return &FeedHandler{service: service, apiPrefix: strings.TrimRight(apiPrefix, "/")}
}

// Issue godoc
// @Summary Issue a calendar subscription URL
// @Tags Export
// @Produce json
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /events/feed [post]
func (h *FeedHandler) Issue(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	feed, err := h.service.Issue(userID, h.requestBaseURL(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, feed, nil)
}

// Serve godoc
// @Summary Calendar subscription feed
// @Tags Export
// @Produce text/calendar
// @Param token path string true "Signed feed token, optionally suffixed with .ics"
// @Success 200 {file} file
// @Failure 401 {object} response.Envelope
// @Router /feeds/{token} [get]
func (h *FeedHandler) Serve(c *gin.Context) {
	result, err := h.service.Render(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.ContentType, result.Filename, result.Body)
}

func (h *FeedHandler) requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if forwarded := c.GetHeader("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return scheme + "://" + c.Request.Host + h.apiPrefix
}

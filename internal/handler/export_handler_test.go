package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aina-app/aina-api/internal/dto"
	appErrors "github.com/aina-app/aina-api/pkg/errors"
)

type exportServiceMock struct {
	req dto.ExportRequest
}

func (m *exportServiceMock) Export(ctx context.Context, userID string, req dto.ExportRequest) (*dto.ExportResult, error) {
	m.req = req
	if req.Format == "xlsx" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported format")
	}
	return &dto.ExportResult{Filename: "aina-calendrier.csv", ContentType: "text/csv; charset=utf-8", Body: []byte("Date;Titre\n")}, nil
}

type feedServiceMock struct {
	baseURL string
	token   string
}

func (m *feedServiceMock) Issue(userID, baseURL string) (*dto.FeedResponse, error) {
	m.baseURL = baseURL
	return &dto.FeedResponse{URL: baseURL + "/feeds/tok.ics", Token: "tok"}, nil
}

func (m *feedServiceMock) Render(ctx context.Context, token string) (*dto.ExportResult, error) {
	m.token = token
	if token != "tok.ics" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid feed token")
	}
	return &dto.ExportResult{ContentType: "text/calendar; charset=utf-8", Body: []byte("BEGIN:VCALENDAR")}, nil
}

func TestExportHandlerStreamsAttachment(t *testing.T) {
	svc := &exportServiceMock{}
	h := NewExportHandler(svc, time.UTC)
	c, w := authedContext(http.MethodGet, "/events/export?format=csv&start_date=2025-01-01", nil)

	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.ExportFormatCSV, svc.req.Format)
	require.NotNil(t, svc.req.StartDate)
	assert.Nil(t, svc.req.EndDate)
	assert.Equal(t, `attachment; filename="aina-calendrier.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "Date;Titre\n", w.Body.String())
}

func TestExportHandlerErrors(t *testing.T) {
	h := NewExportHandler(&exportServiceMock{}, time.UTC)

	c, w := authedContext(http.MethodGet, "/events/export?format=xlsx", nil)
	h.Export(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = authedContext(http.MethodGet, "/events/export?end_date=tomorrow", nil)
	h.Export(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = anonymousContext(http.MethodGet, "/events/export")
	h.Export(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFeedHandlerIssueUsesRequestOrigin(t *testing.T) {
	svc := &feedServiceMock{}
	h := NewFeedHandler(svc, "/api/v1/")
	c, w := authedContext(http.MethodPost, "/api/v1/events/feed", nil)
	c.Request.Host = "api.aina.test"
	c.Request.Header.Set("X-Forwarded-Proto", "https")

	h.Issue(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "https://api.aina.test/api/v1", svc.baseURL)
}

func TestFeedHandlerServe(t *testing.T) {
	svc := &feedServiceMock{}
	h := NewFeedHandler(svc, "/api/v1")

	c, w := anonymousContext(http.MethodGet, "/api/v1/feeds/tok.ics")
	c.Params = gin.Params{{Key: "token", Value: "tok.ics"}}
	h.Serve(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "BEGIN:VCALENDAR", w.Body.String())

	c, w = anonymousContext(http.MethodGet, "/api/v1/feeds/forged")
	c.Params = gin.Params{{Key: "token", Value: "forged"}}
	h.Serve(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aina-app/aina-api/internal/dto"
	"github.com/aina-app/aina-api/internal/middleware"
	appErrors "github.com/aina-app/aina-api/pkg/errors"
)

const dateLayout = "2006-01-02"

func userIDFromContext(c *gin.Context) (string, bool) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok || claims.UserID() == "" {
		return "", false
	}
	return claims.UserID(), true
}

// parseDate reads a YYYY-MM-DD value as local midnight in loc.
func parseDate(raw string, loc *time.Location) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date, expected YYYY-MM-DD")
	}
	return &parsed, nil
}

func parseDateRange(c *gin.Context, loc *time.Location) (dto.DateRangeQuery, error) {
	start, err := parseDate(pickQuery(c, "start_date", "startDate"), loc)
	if err != nil {
		return dto.DateRangeQuery{}, err
	}
	end, err := parseDate(pickQuery(c, "end_date", "endDate"), loc)
	if err != nil {
		return dto.DateRangeQuery{}, err
	}
	return dto.DateRangeQuery{StartDate: start, EndDate: end}, nil
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, key+" must be a positive integer")
	}
	return value, nil
}

func queryBool(c *gin.Context, key string) (bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, appErrors.Clone(appErrors.ErrValidation, key+" must be a boolean")
	}
	return value, nil
}

func pickQuery(c *gin.Context, preferred string, fallback string) string {
	if value := c.Query(preferred); value != "" {
		return value
	}
	return c.Query(fallback)
}

// withCalendarMeta copies aggregation details into the response meta.
func withCalendarMeta(c *gin.Context, view *dto.CalendarResponse) map[string]interface{} {
	middleware.SetCacheHit(c, view.CacheHit)
	middleware.SetMeta(c, "local_count", view.LocalCount)
	return middleware.ExtractMeta(c)
}

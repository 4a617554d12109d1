package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aina-app/aina-api/internal/service"
)

var unmeasuredPaths = map[string]struct{}{
	"/health":          {},
	"/ready":           {},
	"/metrics":         {},
	"/metrics/summary": {},
}

// Metrics records request metrics for API routes. Probe, scrape and docs
// endpoints are left out.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil || !measured(c.Request.URL.Path) {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

func measured(path string) bool {
	if _, skip := unmeasuredPaths[path]; skip {
		return false
	}
	return !strings.HasPrefix(path, "/docs/")
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coursedesk/coursedesk-api/internal/service"
)

// Metrics records request duration and count per route. The Prometheus
// scrape endpoint itself is excluded.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if metricsSvc == nil || path == "/metrics" {
			c.Next()
			return
		}
		if path == "" {
			path = c.Request.URL.Path
		}

		start := time.Now()
		c.Next()

		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

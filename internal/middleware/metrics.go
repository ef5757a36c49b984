package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/knakagawa/agile-dashboard-api/internal/metrics"
)

// RequestMetrics records request counts and latency per route.
func RequestMetrics(m *metrics.APIMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		m.RequestsTotal.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

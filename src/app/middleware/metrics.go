package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"employeeapi/src/infra/metrics"
)

// Metrics records request counts and latencies per matched route.
// Unmatched requests share the "unmatched" route label.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

package middleware

import (
	"github.com/gin-gonic/gin"

	"gretutor/internal/metrics"
)

// Metrics counts requests by method, matched route, and status.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTP(c.Request.Method, route, c.Writer.Status())
	}
}

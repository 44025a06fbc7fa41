// Package middleware holds the cross-cutting gin middleware.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"mindmate/logger"
)

// RequestLogging emits one structured log line per request after it
// completes.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logger.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"client_ip":   c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		if c.Writer.Status() >= 500 {
			logger.ErrorWithFields("request", fields)
		} else {
			logger.InfoWithFields("request", fields)
		}
	}
}

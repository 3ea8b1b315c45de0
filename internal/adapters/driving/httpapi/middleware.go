package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/tssearch/internal/logger"
)

// RateLimit rejects requests with 429 once the shared bucket is empty.
func RateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorEnvelope{
				Error: APIError{Message: "No token left.", Code: CodeTooManyRequests},
			})
			return
		}
		c.Next()
	}
}

// AccessLog logs one line per request after it completes.
// Server errors are always printed, the rest only in verbose mode.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		line := "%s %s status=%d duration_ms=%d client=%s"
		args := []any{
			strings.ToUpper(c.Request.Method), path, status,
			time.Since(start).Milliseconds(), c.ClientIP(),
		}

		switch {
		case status >= http.StatusInternalServerError:
			logger.Error(line, args...)
		case status >= http.StatusBadRequest:
			logger.Warn(line, args...)
		default:
			logger.Info(line, args...)
		}
	}
}

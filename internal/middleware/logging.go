package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gagyebu/internal/logger"
)

const requestIDKey = "requestID"

// RequestID returns the request ID assigned by RequestLogging, or "" when the
// middleware is not installed.
func RequestID(c *gin.Context) string {
	id, _ := c.Value(requestIDKey).(string)
	return id
}

// RequestLogging assigns each request an ID (reusing the caller's
// X-Request-ID when present) and logs method, path, status, latency, and
// client IP after the handler chain runs. Server errors log at warn level.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		log := logger.Get()
		if status >= 500 {
			log.Warnw("request", fields...)
		} else {
			log.Infow("request", fields...)
		}
	}
}

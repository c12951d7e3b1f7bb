package middleware

import (
	"time"

	"rateorder/internal"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request identifier in both directions
const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an identifier, keeping one supplied by the client
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs one line per request. Server errors log at WARN, the rest at DEBUG.
func RequestLogger(logger *internal.Logger) gin.HandlerFunc {
	logger = logger.WithPrefix("HTTP")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		format := "%s %s -> %d (%s) request=%s"
		args := []interface{}{c.Request.Method, c.Request.URL.Path, status, time.Since(start), c.GetString("request_id")}
		if status >= 500 {
			logger.Warn(format, args...)
			return
		}
		logger.Debug(format, args...)
	}
}

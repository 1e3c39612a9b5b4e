package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"text-assistant/logger"
	"text-assistant/trace"
)

const headerRequestID = "X-Request-Id"

// RequestTrace guarantees every inbound request a correlation ID,
// stores it in the context, echoes it in the response header, and
// logs the request outcome with structured fields.
func RequestTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request

		requestID := req.Header.Get(headerRequestID)
		if requestID == "" {
			requestID = trace.GenerateID()
		}

		c.Request = req.WithContext(trace.WithRequestID(req.Context(), requestID))
		c.Writer.Header().Set(headerRequestID, requestID)

		c.Next()

		logger.InfoWithFields("completed request", logger.Fields{
			"method":     req.Method,
			"path":       req.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).String(),
			"request_id": requestID,
		})
	}
}

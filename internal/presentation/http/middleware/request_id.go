package middleware

import (
	"time"

	"github.com/fortunekit/fortune-go/internal/infrastructure/observability/logging"
	"github.com/fortunekit/fortune-go/internal/infrastructure/security"
	"github.com/gin-gonic/gin"
)

// RequestIDHeader carries the per-request ULID on responses.
const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware assigns a ULID to each request and logs the request
// outcome on the http channel.
func RequestIDMiddleware(logger *logging.ChanneledLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = security.GenerateULID()
		}
		c.Set("requestId", requestID)
		c.Header(RequestIDHeader, requestID)

		start := time.Now()
		c.Next()

		if logger != nil {
			logger.HTTP().Info("Request handled",
				"requestId", requestID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", c.Writer.Status(),
				"clientIp", c.ClientIP(),
				"duration", time.Since(start))
		}
	}
}

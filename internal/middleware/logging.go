package middleware

import (
	"time"

	"github.com/SscSPs/property_market_app/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// contextKey is a private type for values stored on the request context.
type contextKey string

// RequestIDHeader carries the request id back to the caller.
const RequestIDHeader = "X-Request-ID"

// StructuredLoggingMiddleware creates a Gin middleware handler that injects
// a request-scoped logger into the request context.
func StructuredLoggingMiddleware(base *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		requestLogger := base.With(
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(logger.WithLogger(c.Request.Context(), requestLogger))

		c.Next()

		requestLogger.Infow("Request completed",
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// GetLoggerFromCtx returns the request-scoped logger, falling back to the default.
func GetLoggerFromCtx(c *gin.Context) *logger.Logger {
	return logger.FromContext(c.Request.Context())
}

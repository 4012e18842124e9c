package middleware

import (
	"time"

	"freight-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoggingMiddleware writes one entry per request once the handler finished. The
// entry names the route template, the :id or :number it addressed, the caller and
// the error code the handler answered with.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("query", c.Request.URL.RawQuery),
			zap.String("ip", c.ClientIP()),
			zap.Int("status_code", status),
			zap.Duration("latency", time.Since(start)),
			zap.Int("response_bytes", c.Writer.Size()),
		}
		if id := c.Param("id"); id != "" {
			fields = append(fields, zap.String("entity_id", id))
		}
		if number := c.Param("number"); number != "" {
			fields = append(fields, zap.String("invoice_number", number))
		}
		if userID, ok := c.Get(ContextUserID); ok {
			if id, ok := userID.(uuid.UUID); ok {
				fields = append(fields, zap.String("user_id", id.String()))
			}
		}
		if code := c.GetString(utils.ErrorCodeKey); code != "" {
			fields = append(fields, zap.String("error_code", code))
		}
		if msg := c.Errors.ByType(gin.ErrorTypePrivate).String(); msg != "" {
			fields = append(fields, zap.String("error", msg))
		}

		log := RequestLogger(c)
		switch {
		case status >= 500:
			log.Error("Request failed", fields...)
		case status >= 400:
			log.Warn("Request rejected", fields...)
		default:
			log.Info("Request completed", fields...)
		}
	}
}

package middleware

import (
	"regexp"

	"freight-backoffice/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// Upstream ids end up in logs and response headers, so only short tokens pass.
var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._\-]{1,64}$`)

// RequestIDMiddleware keeps a well-formed X-Request-ID from the caller or mints one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if !requestIDPattern.MatchString(requestID) {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// RequestLogger returns the package logger tagged with the request id and route.
func RequestLogger(c *gin.Context) *zap.Logger {
	return logger.WithRequestID(GetRequestID(c)).With(
		zap.String("method", c.Request.Method),
		zap.String("route", routeOf(c)),
	)
}

// routeOf prefers the registered route template so ids do not fan out log keys.
func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return c.Request.URL.Path
}

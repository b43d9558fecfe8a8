// Package middleware contains the gin middlewares of the web server.
package middleware

import (
	"time"

	"github.com/cadastro/disciplinas/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-Id"

// RequestIDMiddleware keeps an incoming X-Request-Id or assigns a new one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// AccessLogMiddleware logs one debug line per request, or a warning for
// server errors.
func AccessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		line := []any{c.GetString("request_id"), c.Request.Method, c.Request.URL.Path, status, time.Since(start)}
		if status >= 500 {
			logger.Warning(line...)
		} else {
			logger.Debug(line...)
		}
	}
}

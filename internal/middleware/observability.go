package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/instituto-brotar/painel-brotar/internal/observability"
	"github.com/instituto-brotar/painel-brotar/internal/utils"
	"go.uber.org/zap"
)

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "request_id"

// RequestLogger logs request information
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		latency := requestLatency(c)
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.String("ip", c.ClientIP()),
			zap.String("method", c.Request.Method),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.String("request_id", c.GetString(RequestIDKey)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			observability.Logger().Error("request completed", fields...)
		case status >= 400:
			observability.Logger().Warn("request completed", fields...)
		default:
			observability.Logger().Info("request completed", fields...)
		}
	}
}

// RequestTracker tracks active connections
func RequestTracker() gin.HandlerFunc {
	return func(c *gin.Context) {
		observability.ActiveConnections.Inc()
		defer observability.ActiveConnections.Dec()
		c.Next()
	}
}

// RequestID adds a unique request ID to the context, reusing the caller's
// when it sent one. The id is forwarded on backend calls.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(utils.RequestIDHeader)
		if requestID == "" {
			requestID = utils.GenerateUUID()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(utils.RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(utils.ContextWithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

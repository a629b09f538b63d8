package middlewares

import (
	"github.com/gin-gonic/gin"
)

// HealthPath is the liveness endpoint excluded from request logs when configured
const HealthPath = "/health"

// LoggingMiddleware returns a gin middleware that logs requests,
// but can optionally skip logging for health check endpoints
func LoggingMiddleware(disableHealthcheckLog bool) gin.HandlerFunc {
	logger := gin.Logger()

	if !disableHealthcheckLog {
		return logger
	}

	return gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{HealthPath},
	})
}

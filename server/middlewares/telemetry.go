package middlewares

import (
	"context"
	"time"

	gin "github.com/gin-gonic/gin"
	config "github.com/inference-gateway/agent-catalog/server/config"
	otel "github.com/inference-gateway/agent-catalog/server/otel"
	zap "go.uber.org/zap"
)

type Telemetry interface {
	Middleware() gin.HandlerFunc
}

type TelemetryImpl struct {
	cfg       config.Config
	telemetry otel.OpenTelemetry
	logger    *zap.Logger
}

func NewTelemetryMiddleware(cfg config.Config, telemetry otel.OpenTelemetry, logger *zap.Logger) (Telemetry, error) {
	return &TelemetryImpl{
		cfg:       cfg,
		telemetry: telemetry,
		logger:    logger,
	}, nil
}

// Middleware records request count, status and duration for routed catalog
// requests. Requests that matched no route are ignored.
func (t *TelemetryImpl) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !t.cfg.TelemetryConfig.Enable || t.telemetry == nil || c.FullPath() == "" || c.FullPath() == HealthPath {
			c.Next()
			return
		}

		startTime := time.Now()
		path := c.FullPath()
		method := c.Request.Method

		t.telemetry.RecordRequestCount(c.Request.Context(), method, path)

		c.Next()

		duration := time.Since(startTime)
		durationMs := float64(duration.Nanoseconds()) / float64(time.Millisecond)

		statusCode := c.Writer.Status()

		// The request context may already be cancelled; metrics still need recording.
		ctx := context.WithoutCancel(c.Request.Context())

		t.telemetry.RecordResponseStatus(ctx, method, path, statusCode)
		t.telemetry.RecordRequestDuration(ctx, method, path, durationMs)

		t.logger.Debug("request telemetry recorded",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status_code", statusCode),
			zap.Float64("duration_ms", durationMs),
		)
	}
}

package otel_test

import (
	"context"
	"testing"

	config "github.com/inference-gateway/agent-catalog/server/config"
	otel "github.com/inference-gateway/agent-catalog/server/otel"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
	zap "go.uber.org/zap"
)

func TestNewOpenTelemetry_RequiresDependencies(t *testing.T) {
	_, err := otel.NewOpenTelemetry(nil, zap.NewNop())
	assert.EqualError(t, err, "config cannot be nil")

	_, err = otel.NewOpenTelemetry(&config.Config{}, nil)
	assert.EqualError(t, err, "logger cannot be nil")
}

func TestOpenTelemetry_RecordsCatalogMetrics(t *testing.T) {
	cfg := &config.Config{
		ServiceName:    "agent-catalog",
		ServiceVersion: "test",
	}

	telemetry, err := otel.NewOpenTelemetry(cfg, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	assert.NotPanics(t, func() {
		telemetry.RecordRequestCount(ctx, "GET", "/agents")
		telemetry.RecordResponseStatus(ctx, "GET", "/agents", 200)
		telemetry.RecordRequestDuration(ctx, "GET", "/agents", 1.5)
		telemetry.RecordAgentsListed(ctx, 3)
		telemetry.RecordListingCancelled(ctx)
	})

	assert.NoError(t, telemetry.ShutDown(ctx))
}

package server

import (
	"context"
	"fmt"

	config "github.com/inference-gateway/agent-catalog/server/config"
	otel "github.com/inference-gateway/agent-catalog/server/otel"
	zap "go.uber.org/zap"
)

// CatalogServerBuilder provides a fluent interface for building catalog servers.
// Use NewCatalogServerBuilder to create an instance, then chain method calls to configure the server.
//
// Example:
//
//	server, err := NewCatalogServerBuilder(cfg, logger).
//	  WithCatalog(registry).
//	  Build()
type CatalogServerBuilder interface {
	// WithCatalog sets the catalog listed by GET /agents. Required.
	WithCatalog(catalog AgentCatalog) CatalogServerBuilder

	// WithLogger sets a custom logger for the builder and resulting server.
	WithLogger(logger *zap.Logger) CatalogServerBuilder

	// WithTelemetry sets a telemetry instance instead of creating one from the
	// telemetry configuration.
	WithTelemetry(telemetry otel.OpenTelemetry) CatalogServerBuilder

	// Build creates and returns the configured catalog server.
	Build() (CatalogServer, error)
}

var _ CatalogServerBuilder = (*CatalogServerBuilderImpl)(nil)

// CatalogServerBuilderImpl is the concrete implementation of the CatalogServerBuilder interface.
type CatalogServerBuilderImpl struct {
	cfg       config.Config      // Base configuration for the server
	logger    *zap.Logger        // Logger instance for the server
	catalog   AgentCatalog       // Catalog to serve
	telemetry otel.OpenTelemetry // Optional pre-built telemetry
}

// NewCatalogServerBuilder creates a new server builder.
// A zero-valued server section is populated with defaults from the struct tags.
func NewCatalogServerBuilder(cfg config.Config, logger *zap.Logger) CatalogServerBuilder {
	if cfg.ServerConfig.Port == "" {
		defaultCfg, err := config.NewWithDefaults(context.Background(), nil)
		if err == nil {
			cfg.ServerConfig = defaultCfg.ServerConfig
			if cfg.TelemetryConfig.MetricsConfig.Port == "" {
				cfg.TelemetryConfig.MetricsConfig = defaultCfg.TelemetryConfig.MetricsConfig
			}
		}
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &CatalogServerBuilderImpl{
		cfg:    cfg,
		logger: logger,
	}
}

// WithCatalog sets the served catalog
func (b *CatalogServerBuilderImpl) WithCatalog(catalog AgentCatalog) CatalogServerBuilder {
	b.catalog = catalog
	return b
}

// WithLogger sets a custom logger
func (b *CatalogServerBuilderImpl) WithLogger(logger *zap.Logger) CatalogServerBuilder {
	b.logger = logger
	return b
}

// WithTelemetry sets a pre-built telemetry instance
func (b *CatalogServerBuilderImpl) WithTelemetry(telemetry otel.OpenTelemetry) CatalogServerBuilder {
	b.telemetry = telemetry
	return b
}

// Build creates and returns the configured catalog server
func (b *CatalogServerBuilderImpl) Build() (CatalogServer, error) {
	if b.catalog == nil {
		return nil, fmt.Errorf("agent catalog must be configured before building the server - use WithCatalog()")
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}

	telemetryInstance := b.telemetry
	if telemetryInstance == nil && b.cfg.TelemetryConfig.Enable {
		var err error
		telemetryInstance, err = otel.NewOpenTelemetry(&b.cfg, b.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		metricsAddr := b.cfg.TelemetryConfig.MetricsConfig.Host + ":" + b.cfg.TelemetryConfig.MetricsConfig.Port
		b.logger.Info("telemetry enabled - metrics will be available", zap.String("metrics_url", metricsAddr+"/metrics"))
	}

	cfg := b.cfg
	return NewCatalogServer(&cfg, b.logger, b.catalog, telemetryInstance), nil
}

package otel

import (
	"context"
	"fmt"

	config "github.com/inference-gateway/agent-catalog/server/config"
	otel "go.opentelemetry.io/otel"
	attribute "go.opentelemetry.io/otel/attribute"
	prometheus "go.opentelemetry.io/otel/exporters/prometheus"
	metric "go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	resource "go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.32.0"
	zap "go.uber.org/zap"
)

//go:generate go tool counterfeiter -o ../mocks/fake_open_telemetry.go . OpenTelemetry

// OpenTelemetry defines the operations for telemetry
type OpenTelemetry interface {
	// HTTP level metrics
	RecordRequestCount(ctx context.Context, requestMethod, requestPath string)
	RecordResponseStatus(ctx context.Context, requestMethod, requestPath string, statusCode int)
	RecordRequestDuration(ctx context.Context, requestMethod, requestPath string, durationMs float64)

	// Catalog level metrics
	RecordAgentsListed(ctx context.Context, count int)
	RecordListingCancelled(ctx context.Context)

	// Shutdown the telemetry system
	ShutDown(ctx context.Context) error
}

type OpenTelemetryImpl struct {
	logger        *zap.Logger
	meterProvider *sdkmetric.MeterProvider
	meter         metric.Meter

	// Metrics
	requestCounter           metric.Int64Counter
	responseStatusCounter    metric.Int64Counter
	requestDurationHistogram metric.Float64Histogram
	agentsListedCounter      metric.Int64Counter
	listingCancelledCounter  metric.Int64Counter
}

// NewOpenTelemetry creates a new OpenTelemetry implementation with proper dependency injection
func NewOpenTelemetry(cfg *config.Config, logger *zap.Logger) (OpenTelemetry, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	o := &OpenTelemetryImpl{
		logger: logger,
	}

	if err := o.initialize(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize opentelemetry: %w", err)
	}

	return o, nil
}

func (o *OpenTelemetryImpl) initialize(cfg *config.Config) error {
	o.logger.Info("initializing opentelemetry",
		zap.String("service_name", cfg.ServiceName),
		zap.String("version", cfg.ServiceVersion))

	exporter, err := prometheus.New()
	if err != nil {
		o.logger.Error("failed to create prometheus exporter", zap.Error(err))
		return err
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
	)

	histogramBoundaries := []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000}

	latencyView := sdkmetric.NewView(
		sdkmetric.Instrument{
			Kind: sdkmetric.InstrumentKindHistogram,
		},
		sdkmetric.Stream{
			Aggregation: sdkmetric.AggregationExplicitBucketHistogram{
				Boundaries: histogramBoundaries,
			},
		},
	)

	o.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
		sdkmetric.WithView(latencyView),
	)
	otel.SetMeterProvider(o.meterProvider)

	o.meter = o.meterProvider.Meter(cfg.ServiceName)

	if err := o.initializeMetrics(); err != nil {
		o.logger.Error("failed to initialize metrics", zap.Error(err))
		return err
	}

	o.logger.Info("opentelemetry initialized successfully")
	return nil
}

func (o *OpenTelemetryImpl) RecordRequestCount(ctx context.Context, requestMethod, requestPath string) {
	attributes := []attribute.KeyValue{
		attribute.String("request_method", requestMethod),
		attribute.String("request_path", requestPath),
	}

	o.requestCounter.Add(ctx, 1, metric.WithAttributes(attributes...))
}

func (o *OpenTelemetryImpl) RecordResponseStatus(ctx context.Context, requestMethod, requestPath string, statusCode int) {
	attributes := []attribute.KeyValue{
		attribute.String("request_method", requestMethod),
		attribute.String("request_path", requestPath),
		attribute.Int("status_code", statusCode),
	}

	o.responseStatusCounter.Add(ctx, 1, metric.WithAttributes(attributes...))
}

func (o *OpenTelemetryImpl) RecordRequestDuration(ctx context.Context, requestMethod, requestPath string, durationMs float64) {
	attributes := []attribute.KeyValue{
		attribute.String("request_method", requestMethod),
		attribute.String("request_path", requestPath),
	}

	o.requestDurationHistogram.Record(ctx, durationMs, metric.WithAttributes(attributes...))
}

func (o *OpenTelemetryImpl) RecordAgentsListed(ctx context.Context, count int) {
	o.agentsListedCounter.Add(ctx, int64(count))
}

func (o *OpenTelemetryImpl) RecordListingCancelled(ctx context.Context) {
	o.listingCancelledCounter.Add(ctx, 1)
}

func (o *OpenTelemetryImpl) ShutDown(ctx context.Context) error {
	return o.meterProvider.Shutdown(ctx)
}

// initializeMetrics initializes all the OpenTelemetry metrics
func (o *OpenTelemetryImpl) initializeMetrics() error {
	var err error

	o.requestCounter, err = o.meter.Int64Counter(
		"catalog.requests.total",
		metric.WithDescription("Total number of catalog requests processed"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create request counter: %w", err)
	}

	o.responseStatusCounter, err = o.meter.Int64Counter(
		"catalog.response_status.total",
		metric.WithDescription("Total number of responses by status code"),
		metric.WithUnit("{response}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create response status counter: %w", err)
	}

	o.requestDurationHistogram, err = o.meter.Float64Histogram(
		"catalog.request_duration",
		metric.WithDescription("Duration of catalog request processing"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return fmt.Errorf("failed to create request duration histogram: %w", err)
	}

	o.agentsListedCounter, err = o.meter.Int64Counter(
		"catalog.agents_listed.total",
		metric.WithDescription("Total number of agent entries returned by listings"),
		metric.WithUnit("{agent}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create agents listed counter: %w", err)
	}

	o.listingCancelledCounter, err = o.meter.Int64Counter(
		"catalog.listings_cancelled.total",
		metric.WithDescription("Total number of listings aborted by request cancellation"),
		metric.WithUnit("{listing}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create listings cancelled counter: %w", err)
	}

	o.logger.Debug("all opentelemetry metrics initialized successfully")
	return nil
}

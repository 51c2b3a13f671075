// Package telemetry provides OpenTelemetry tracing and metrics for message
// delivery. Spans are exported over OTLP/HTTP and metrics through the
// Prometheus registry served by `ammd serve`.
package telemetry

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	metricsdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "ammd"
	serviceVersion = "1.0.0"
)

// Config holds the configuration for telemetry
type Config struct {
	Enabled bool
	// OTLPEndpoint is the collector host:port. Empty keeps spans in process.
	OTLPEndpoint string
	SampleRate   float64
	Environment  string

	PrometheusEnabled bool
	// Registerer receives the metric collector; nil selects the default registry.
	Registerer promclient.Registerer
}

// Provider manages OpenTelemetry tracing and metrics. A nil or disabled
// Provider is valid and records nothing.
type Provider struct {
	tracerProvider *tracesdk.TracerProvider
	meterProvider  *metricsdk.MeterProvider
	tracer         trace.Tracer
	config         Config

	msgCounter  metric.Int64Counter
	msgDuration metric.Float64Histogram
}

// NewProvider initializes tracing and, when enabled, Prometheus metrics.
// Extra tracer options are appended to the provider, e.g. a span processor.
func NewProvider(cfg Config, opts ...tracesdk.TracerProviderOption) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{config: cfg}, nil
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid telemetry config: %w", err)
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	provider := &Provider{config: cfg}

	if err := provider.initTracing(res, opts); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if cfg.PrometheusEnabled {
		if err := provider.initMetrics(res); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	return provider, nil
}

func validateConfig(cfg Config) error {
	if cfg.OTLPEndpoint != "" {
		if _, err := url.Parse("http://" + trimScheme(cfg.OTLPEndpoint)); err != nil {
			return fmt.Errorf("invalid otlp endpoint: %w", err)
		}
	}

	if cfg.SampleRate < 0 || cfg.SampleRate > 1 {
		return fmt.Errorf("sample rate must be between 0 and 1")
	}

	return nil
}

func trimScheme(endpoint string) string {
	endpoint = strings.TrimPrefix(endpoint, "http://")
	return strings.TrimPrefix(endpoint, "https://")
}

func newResource(cfg Config) (*resource.Resource, error) {
	return resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
			attribute.String("environment", cfg.Environment),
		),
	)
}

func (p *Provider) initTracing(res *resource.Resource, opts []tracesdk.TracerProviderOption) error {
	tpOpts := []tracesdk.TracerProviderOption{
		tracesdk.WithResource(res),
		tracesdk.WithSampler(tracesdk.ParentBased(tracesdk.TraceIDRatioBased(p.config.SampleRate))),
	}

	if p.config.OTLPEndpoint != "" {
		client := otlptracehttp.NewClient(
			otlptracehttp.WithEndpoint(trimScheme(p.config.OTLPEndpoint)),
			otlptracehttp.WithInsecure(),
			otlptracehttp.WithURLPath("/v1/traces"),
		)
		exporter, err := otlptrace.New(context.Background(), client)
		if err != nil {
			return fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		tpOpts = append(tpOpts, tracesdk.WithBatcher(exporter,
			tracesdk.WithMaxExportBatchSize(512),
			tracesdk.WithMaxQueueSize(2048),
			tracesdk.WithBatchTimeout(5*time.Second),
		))
	}

	tp := tracesdk.NewTracerProvider(append(tpOpts, opts...)...)
	otel.SetTracerProvider(tp)

	p.tracerProvider = tp
	p.tracer = tp.Tracer(serviceName)
	return nil
}

func (p *Provider) initMetrics(res *resource.Resource) error {
	var exporterOpts []prometheus.Option
	if p.config.Registerer != nil {
		exporterOpts = append(exporterOpts, prometheus.WithRegisterer(p.config.Registerer))
	}
	exporter, err := prometheus.New(exporterOpts...)
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	mp := metricsdk.NewMeterProvider(
		metricsdk.WithResource(res),
		metricsdk.WithReader(exporter),
	)
	meter := mp.Meter(serviceName)

	msgCounter, err := meter.Int64Counter(
		"amm_messages",
		metric.WithDescription("Total number of delivered messages"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return err
	}
	msgDuration, err := meter.Float64Histogram(
		"amm_message_duration",
		metric.WithDescription("Message processing time"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	p.meterProvider = mp
	p.msgCounter = msgCounter
	p.msgDuration = msgDuration
	return nil
}

// StartMessage opens a span for one delivered message. The returned function
// ends the span and records the outcome; it must be called exactly once.
func (p *Provider) StartMessage(ctx context.Context, msgType string, height int64) (context.Context, func(error)) {
	if p == nil || p.tracer == nil {
		return ctx, func(error) {}
	}

	start := time.Now()
	ctx, span := p.tracer.Start(ctx, "message.deliver",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("msg.type", msgType),
			attribute.Int64("block.height", height),
		),
	)

	return ctx, func(err error) {
		status := "success"
		if err != nil {
			status = "failed"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()

		if p.msgCounter != nil {
			attrs := metric.WithAttributes(
				attribute.String("msg.type", msgType),
				attribute.String("msg.status", status),
			)
			p.msgCounter.Add(ctx, 1, attrs)
			p.msgDuration.Record(ctx, float64(time.Since(start).Microseconds())/1000, attrs)
		}
	}
}

// Shutdown flushes and stops the providers
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}

	var err error

	if p.tracerProvider != nil {
		if shutdownErr := p.tracerProvider.Shutdown(ctx); shutdownErr != nil {
			err = fmt.Errorf("failed to shutdown tracer provider: %w", shutdownErr)
		}
	}

	if p.meterProvider != nil {
		if shutdownErr := p.meterProvider.Shutdown(ctx); shutdownErr != nil {
			if err != nil {
				err = fmt.Errorf("%w; failed to shutdown meter provider: %w", err, shutdownErr)
			} else {
				err = fmt.Errorf("failed to shutdown meter provider: %w", shutdownErr)
			}
		}
	}

	return err
}

// HealthCheck verifies that telemetry is properly initialized
func (p *Provider) HealthCheck() error {
	if p == nil || !p.config.Enabled {
		return nil
	}
	if p.tracerProvider == nil || p.tracer == nil {
		return fmt.Errorf("tracer provider not initialized")
	}
	if p.config.PrometheusEnabled && p.meterProvider == nil {
		return fmt.Errorf("meter provider not initialized but Prometheus is enabled")
	}
	return nil
}

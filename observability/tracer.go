package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/skillsenselab/authkit/logger"
	"github.com/skillsenselab/authkit/version"
)

const defaultTracerName = "github.com/skillsenselab/authkit/observability"

// Span names recorded around credential operations.
const (
	SpanTokenIssue     = "token.issue"
	SpanTokenVerify    = "token.verify"
	SpanPasswordHash   = "password.hash"
	SpanPasswordVerify = "password.verify"
)

// Attribute keys attached to credential spans.
const (
	AttrServiceName   = "service.name"   // host service reporting the span
	AttrOperationName = "operation.name" // credential flow, e.g. "login"
	AttrRequestID     = "request.id"
	AttrUserID        = "user.id"
	AttrTokenType     = "token.type" // access or refresh
	AttrAlgorithm     = "algorithm"  // hash or signing algorithm
	AttrOutcome       = "outcome"
	AttrDurationMs    = "duration_ms"
	AttrStatus        = "status"
	AttrErrorMessage  = "error.message"
)

// TracerConfig carries the settings for the OTLP trace pipeline.
type TracerConfig struct {
	ServiceName    string  // reported as service.name on every span
	ServiceVersion string  // reported as service.version
	Environment    string  // deployment environment (dev, staging, prod)
	Endpoint       string  // OTLP HTTP collector as host:port
	Insecure       bool    // plaintext transport toward the collector
	SampleRate     float64 // fraction of traces to keep, 0.0 through 1.0
}

// DefaultTracerConfig returns development defaults: a local collector,
// full sampling, and the build's embedded version.
func DefaultTracerConfig(serviceName string) TracerConfig {
	return TracerConfig{
		ServiceName:    serviceName,
		ServiceVersion: version.GetShortVersion(),
		Environment:    defaultEnvironment,
		Endpoint:       defaultCollectorEndpoint,
		Insecure:       true,
		SampleRate:     1.0,
	}
}

// sampler maps the configured rate onto an SDK sampler.
func (c *TracerConfig) sampler() sdktrace.Sampler {
	switch {
	case c.SampleRate >= 1.0:
		return sdktrace.AlwaysSample()
	case c.SampleRate <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(c.SampleRate)
	}
}

// newTraceExporter builds the OTLP HTTP exporter for the configured collector.
func newTraceExporter(ctx context.Context, cfg *TracerConfig) (sdktrace.SpanExporter, error) {
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return otlptracehttp.New(ctx, opts...)
}

// InitTracer wires the global tracer provider to an OTLP HTTP exporter
// and installs W3C trace-context propagation. Shut the returned provider
// down on application exit.
func InitTracer(ctx context.Context, config *TracerConfig) (*sdktrace.TracerProvider, error) {
	exporter, err := newTraceExporter(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}

	res, err := buildResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(config.sampler()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{},
	))

	logger.Info("tracer provider installed", logger.Fields(
		"service", config.ServiceName,
		"collector", config.Endpoint,
		"sample_rate", config.SampleRate,
	))
	return tp, nil
}

// Tracer returns a named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// StartSpan opens a span on the package tracer.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer(defaultTracerName).Start(ctx, name, opts...)
}

// SpanFromContext returns the span carried by ctx. Without one it returns
// a noop span, never nil.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// SetSpanAttribute sets a typed attribute on the recording span in ctx.
// Values of unsupported types are dropped.
func SetSpanAttribute(ctx context.Context, key string, value any) {
	span := SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	if kv, ok := spanAttr(key, value); ok {
		span.SetAttributes(kv)
	}
}

func spanAttr(key string, value any) (attribute.KeyValue, bool) {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v), true
	case int:
		return attribute.Int(key, v), true
	case int64:
		return attribute.Int64(key, v), true
	case float64:
		return attribute.Float64(key, v), true
	case bool:
		return attribute.Bool(key, v), true
	case []string:
		return attribute.StringSlice(key, v), true
	case time.Duration:
		return attribute.Int64(key, v.Milliseconds()), true
	}
	return attribute.KeyValue{}, false
}

// SetSpanError records an error on the recording span in ctx.
func SetSpanError(ctx context.Context, err error) {
	if span := SpanFromContext(ctx); span.IsRecording() {
		span.RecordError(err)
	}
}

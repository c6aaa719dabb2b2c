package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/skillsenselab/authkit/logger"
	"github.com/skillsenselab/authkit/version"
)

// MeterConfig carries the settings for the OTLP metric pipeline.
type MeterConfig struct {
	ServiceName    string        // reported as service.name on every metric
	ServiceVersion string        // reported as service.version
	Environment    string        // deployment environment (dev, staging, prod)
	Endpoint       string        // OTLP HTTP collector as host:port
	Insecure       bool          // plaintext transport toward the collector
	Interval       time.Duration // how often accumulated metrics are pushed
}

// DefaultMeterConfig returns development defaults: a local collector and
// the build's embedded version.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: version.GetShortVersion(),
		Environment:    defaultEnvironment,
		Endpoint:       defaultCollectorEndpoint,
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// newMetricExporter builds the OTLP HTTP exporter for the configured collector.
func newMetricExporter(ctx context.Context, cfg *MeterConfig) (sdkmetric.Exporter, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	return otlpmetrichttp.New(ctx, opts...)
}

// InitMeter wires the global meter provider to an OTLP HTTP exporter.
// Shut the returned provider down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	exporter, err := newMetricExporter(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := buildResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter provider installed", logger.Fields(
		"service", config.ServiceName,
		"collector", config.Endpoint,
		"interval", config.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Verification outcome values recorded on the tokens.verified counter.
const (
	OutcomeOK      = "ok"
	OutcomeExpired = "expired"
	OutcomeInvalid = "invalid"
)

// Metrics holds the metric instruments for credential operations.
type Metrics struct {
	tokensIssued      metric.Int64Counter
	tokensVerified    metric.Int64Counter
	hashDuration      metric.Float64Histogram
	verifyTotal       metric.Int64Counter
	operationTotal    metric.Int64Counter
	operationDuration metric.Float64Histogram
	errorTotal        metric.Int64Counter
}

// NewMetrics registers the instrument set on the given meter. The first
// instrument that fails to register fails the whole set.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var err error
	counter := func(name, desc string) metric.Int64Counter {
		c, cerr := meter.Int64Counter(name, metric.WithDescription(desc))
		if cerr != nil && err == nil {
			err = fmt.Errorf("creating %s counter: %w", name, cerr)
		}
		return c
	}
	histogram := func(name, desc string) metric.Float64Histogram {
		h, herr := meter.Float64Histogram(name,
			metric.WithDescription(desc),
			metric.WithUnit("s"),
		)
		if herr != nil && err == nil {
			err = fmt.Errorf("creating %s histogram: %w", name, herr)
		}
		return h
	}

	m := &Metrics{
		tokensIssued:      counter("authkit.tokens.issued", "Total number of tokens issued, by token type"),
		tokensVerified:    counter("authkit.tokens.verified", "Total number of token verifications, by outcome"),
		hashDuration:      histogram("authkit.password.hash.duration", "Duration of password hashing in seconds"),
		verifyTotal:       counter("authkit.password.verify.total", "Total number of password verifications, by outcome"),
		operationTotal:    counter("authkit.operation.total", "Total number of operations"),
		operationDuration: histogram("authkit.operation.duration", "Duration of operations in seconds"),
		errorTotal:        counter("authkit.error.total", "Total errors by type and component"),
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// RecordTokenIssued counts one issued token by type.
func (m *Metrics) RecordTokenIssued(ctx context.Context, tokenType string) {
	m.tokensIssued.Add(ctx, 1, metric.WithAttributes(attribute.String("type", tokenType)))
}

// RecordTokenVerified counts one verification by outcome (OutcomeOK,
// OutcomeExpired or OutcomeInvalid).
func (m *Metrics) RecordTokenVerified(ctx context.Context, outcome string) {
	m.tokensVerified.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordHashDuration records how long one password hash took, by algorithm.
func (m *Metrics) RecordHashDuration(ctx context.Context, algorithm string, duration time.Duration) {
	m.hashDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String("algorithm", algorithm)))
}

// RecordPasswordVerify counts one password check by algorithm and outcome.
func (m *Metrics) RecordPasswordVerify(ctx context.Context, algorithm string, ok bool) {
	outcome := OutcomeOK
	if !ok {
		outcome = OutcomeInvalid
	}
	m.verifyTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("algorithm", algorithm),
		attribute.String("outcome", outcome),
	))
}

// RecordOperation counts one completed operation and records its latency.
func (m *Metrics) RecordOperation(ctx context.Context, service, operation, status string, duration time.Duration) {
	scope := []attribute.KeyValue{
		attribute.String("service", service),
		attribute.String("operation", operation),
	}
	m.operationTotal.Add(ctx, 1, metric.WithAttributes(append(scope, attribute.String("status", status))...))
	m.operationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(scope...))
}

// RecordError counts one error by type and component.
func (m *Metrics) RecordError(ctx context.Context, errType, component string) {
	attrs := metric.WithAttributes(attribute.String("type", errType), attribute.String("component", component))
	m.errorTotal.Add(ctx, 1, attrs)
}

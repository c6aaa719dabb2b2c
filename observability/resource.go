package observability

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// Development transport defaults shared by the tracer and meter configs.
const (
	defaultCollectorEndpoint = "localhost:4318"
	defaultEnvironment       = "development"
)

// buildResource describes the host service to the collector: name,
// version and deployment environment. Both the tracer and the meter
// provider attach it so credential metrics and spans correlate.
func buildResource(serviceName, serviceVersion, environment string) (*resource.Resource, error) {
	attrs := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		semconv.ServiceVersion(serviceVersion),
		attribute.String("environment", environment),
	)
	return resource.Merge(resource.Default(), attrs)
}

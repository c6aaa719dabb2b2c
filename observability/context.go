package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// OperationContext follows one credential flow through a consuming service
// and ties its span, elapsed time and metric instruments together. Login,
// token refresh and password changes are the usual operations.
type OperationContext struct {
	ServiceName   string
	OperationName string

	// RequestID and UserID are optional correlation tags; empty values
	// are left off the span.
	RequestID string
	UserID    string

	StartTime time.Time
	Metrics   *Metrics
}

// OperationOption configures an OperationContext.
type OperationOption func(*OperationContext)

// WithRequestID tags the operation with the inbound request ID.
func WithRequestID(id string) OperationOption {
	return func(oc *OperationContext) { oc.RequestID = id }
}

// WithUserID tags the operation with the acting user.
func WithUserID(id string) OperationOption {
	return func(oc *OperationContext) { oc.UserID = id }
}

// WithMetrics attaches metric instruments. Without them the operation is
// traced but not measured.
func WithMetrics(m *Metrics) OperationOption {
	return func(oc *OperationContext) { oc.Metrics = m }
}

// NewOperationContext starts the clock on a named operation.
func NewOperationContext(serviceName, operationName string, opts ...OperationOption) *OperationContext {
	oc := &OperationContext{
		ServiceName:   serviceName,
		OperationName: operationName,
		StartTime:     time.Now(),
	}
	for _, opt := range opts {
		opt(oc)
	}
	return oc
}

type opCtxKey struct{}

// WithOperationContext stores the operation in ctx for handlers further down.
func WithOperationContext(ctx context.Context, oc *OperationContext) context.Context {
	return context.WithValue(ctx, opCtxKey{}, oc)
}

// OperationContextFromContext returns the operation stored in ctx, or nil.
func OperationContextFromContext(ctx context.Context) *OperationContext {
	oc, _ := ctx.Value(opCtxKey{}).(*OperationContext)
	return oc
}

// StartSpanForOperation opens a span carrying the operation identity.
func (oc *OperationContext) StartSpanForOperation(ctx context.Context, spanName string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String(AttrServiceName, oc.ServiceName),
		attribute.String(AttrOperationName, oc.OperationName),
	}
	if oc.RequestID != "" {
		attrs = append(attrs, attribute.String(AttrRequestID, oc.RequestID))
	}
	if oc.UserID != "" {
		attrs = append(attrs, attribute.String(AttrUserID, oc.UserID))
	}
	return StartSpan(ctx, spanName, trace.WithAttributes(attrs...))
}

// EndOperation closes the span and records operation metrics. A non-nil err
// is recorded on the span and counted on the error counter under the
// operation name.
func (oc *OperationContext) EndOperation(ctx context.Context, span trace.Span, status string, err error) {
	elapsed := time.Since(oc.StartTime)

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, elapsed.Milliseconds()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}
	span.End()

	if oc.Metrics == nil {
		return
	}
	if err != nil {
		oc.Metrics.RecordError(ctx, oc.OperationName, oc.ServiceName)
	}
	oc.Metrics.RecordOperation(ctx, oc.ServiceName, oc.OperationName, status, elapsed)
}

// Duration reports how long the operation has been running.
func (oc *OperationContext) Duration() time.Duration {
	return time.Since(oc.StartTime)
}

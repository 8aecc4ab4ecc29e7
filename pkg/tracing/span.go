// Package tracing provides OpenTelemetry span helpers for the CQH health engine.
// It only uses the otel API; installing an SDK, exporter, and sampler is the
// hosting application's responsibility. Without an SDK installed every helper
// is a cheap no-op.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// StartSpan creates a new span with the given name and options.
// It automatically links the span to its parent span from the context.
// The returned context contains the new span and should be passed to downstream operations.
//
// Example:
//
//	ctx, span := tracing.StartSpan(ctx, "health.check",
//	    trace.WithAttributes(attribute.String("probe", "database")))
//	defer span.End()
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	tracer := otel.Tracer("cqh")
	return tracer.Start(ctx, name, opts...)
}

// SpanFromContext retrieves the current span from the context.
// Returns a no-op span if no span is present in the context.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// SetSpanAttributes adds attributes to the span in the context.
func SetSpanAttributes(ctx context.Context, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attrs...)
}

// SetSpanError marks the span as errored and records the error message.
// The span status is set to Error and the error is recorded as an event.
func SetSpanError(ctx context.Context, err error) {
	if err == nil {
		return
	}

	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetSpanStatus sets the status code and description of the span.
func SetSpanStatus(ctx context.Context, code codes.Code, description string) {
	span := trace.SpanFromContext(ctx)
	span.SetStatus(code, description)
}

// AddSpanEvent adds an event to the span with the given name and attributes.
// Events are timestamped occurrences that happened during the span's lifetime.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// ProbeAttributes returns common span attributes for a probe execution.
func ProbeAttributes(probe string, critical bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("health.probe", probe),
		attribute.Bool("health.critical", critical),
	}
}

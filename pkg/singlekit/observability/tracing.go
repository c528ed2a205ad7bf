package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the singlekit tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("singlekit")

// SpanManager handles trace span lifecycle around factory invocations.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartCreationSpan starts a span covering one factory invocation.
	// Returns the context with span and the span itself.
	StartCreationSpan(ctx context.Context, variant, typ string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartCreationSpan starts a span covering one factory invocation.
func (m *otelSpanManager) StartCreationSpan(ctx context.Context, variant, typ string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "singlekit.create",
		trace.WithAttributes(
			attribute.String("variant", variant),
			attribute.String("type", typ),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

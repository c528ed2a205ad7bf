package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records instance lifecycle metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordCreation records one constructor or factory attempt with its
	// duration and error status.
	RecordCreation(ctx context.Context, variant, typ string, duration time.Duration, err error)

	// RecordReset records an explicit reset, removal, or clear.
	RecordReset(ctx context.Context, variant, typ string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	creations      metric.Int64Counter
	factoryLatency metric.Float64Histogram
	factoryErrors  metric.Int64Counter
	resets         metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("singlekit")

	creations, err := meter.Int64Counter("singlekit.instance.creations",
		metric.WithDescription("Number of instance creation attempts"),
	)
	if err != nil {
		return nil, err
	}

	factoryLatency, err := meter.Float64Histogram("singlekit.factory.latency_ms",
		metric.WithDescription("Factory invocation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	factoryErrors, err := meter.Int64Counter("singlekit.factory.errors",
		metric.WithDescription("Number of failed factory invocations"),
	)
	if err != nil {
		return nil, err
	}

	resets, err := meter.Int64Counter("singlekit.instance.resets",
		metric.WithDescription("Number of instance resets and removals"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		creations:      creations,
		factoryLatency: factoryLatency,
		factoryErrors:  factoryErrors,
		resets:         resets,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordCreation records one creation attempt.
func (m *otelMetrics) RecordCreation(ctx context.Context, variant, typ string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("variant", variant),
		attribute.String("type", typ),
	}

	m.creations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.factoryLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.factoryErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordReset records an explicit reset or removal.
func (m *otelMetrics) RecordReset(ctx context.Context, variant, typ string) {
	attrs := []attribute.KeyValue{
		attribute.String("variant", variant),
		attribute.String("type", typ),
	}
	m.resets.Add(ctx, 1, metric.WithAttributes(attrs...))
}

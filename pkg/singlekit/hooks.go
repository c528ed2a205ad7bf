package singlekit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/singlekit/pkg/singlekit/observability"
)

// Variant labels attached to metrics, spans, and log events.
const (
	variantLazy       = "lazy"
	variantGeneric    = "generic"
	variantResettable = "resettable"
	variantDisposable = "disposable"
	variantReadOnly   = "readonly"
	variantAsync      = "async"
	variantWeak       = "weak"
	variantLocal      = "local"
	variantKeyed      = "keyed"
	variantScoped     = "scoped"
)

// Hooks carries optional lifecycle instrumentation. Any nil field is
// skipped; the zero value disables instrumentation entirely. Hooks observe
// creation and reset events and never alter error propagation.
type Hooks struct {
	Metrics observability.MetricsRecorder
	Logger  *slog.Logger
	Spans   observability.SpanManager
}

var (
	hooksMu sync.RWMutex
	hooks   Hooks
)

// SetHooks installs process-wide instrumentation for instance lifecycle
// events. Safe to call concurrently with instance access, though it is
// normally called once at startup.
func SetHooks(h Hooks) {
	hooksMu.Lock()
	hooks = h
	hooksMu.Unlock()
}

func currentHooks() Hooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return hooks
}

// recordCreation reports one constructor or factory attempt.
func recordCreation(ctx context.Context, variant, typ string, d time.Duration, err error) {
	h := currentHooks()
	if h.Metrics != nil {
		h.Metrics.RecordCreation(ctx, variant, typ, d, err)
	}
	if h.Logger != nil {
		if err != nil {
			observability.LogFactoryError(h.Logger, variant, typ, err)
		} else {
			observability.LogCreation(h.Logger, variant, typ, observability.NewInstanceID(), d)
		}
	}
}

// recordReset reports an explicit reset, removal, or clear.
func recordReset(ctx context.Context, variant, typ string) {
	h := currentHooks()
	if h.Metrics != nil {
		h.Metrics.RecordReset(ctx, variant, typ)
	}
	if h.Logger != nil {
		observability.LogReset(h.Logger, variant, typ)
	}
}

// startCreationSpan opens a span around a context-aware factory invocation.
// Returns a nil SpanManager when tracing is not installed.
func startCreationSpan(ctx context.Context, variant, typ string) (context.Context, trace.Span, observability.SpanManager) {
	h := currentHooks()
	if h.Spans == nil {
		return ctx, nil, nil
	}
	ctx, span := h.Spans.StartCreationSpan(ctx, variant, typ)
	return ctx, span, h.Spans
}

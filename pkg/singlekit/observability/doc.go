// Package observability provides optional instrumentation for instance
// lifecycle events: structured logging, metrics, and tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
// Install them with singlekit.SetHooks; nothing is recorded otherwise.
package observability

// Package tracing holds the process-wide tracer used to annotate pipeline
// stages with spans. Callers wrap each operation with StartSpan so slow
// documents and graph round trips show up on a trace instead of in guesswork.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var tracer trace.Tracer = noop.NewTracerProvider().Tracer("noop")

// SetTracer replaces the process-wide tracer. Call once during startup,
// before any spans are started.
func SetTracer(t trace.Tracer) {
	tracer = t
}

// Init wires a tracer provider for the given service and installs it both
// globally and as the package tracer. The returned shutdown func flushes
// pending spans and must be called before exit.
func Init(serviceName string, opts ...sdktrace.TracerProviderOption) func(context.Context) error {
	provider := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(provider)
	SetTracer(provider.Tracer(serviceName))
	return provider.Shutdown
}

// StartSpan starts a span with the given name using the configured tracer.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, opts...)
}

// GetActiveSpan returns the span attached to ctx, if any.
func GetActiveSpan(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

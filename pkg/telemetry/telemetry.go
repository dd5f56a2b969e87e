// Package telemetry sets up OpenTelemetry tracing for outbound vendor calls.
package telemetry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const exporterTimeout = 3 * time.Second

// Telemetry owns the tracer provider installed by Setup.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
}

// Shutdown flushes pending spans. It is a no-op when tracing is disabled.
func (t Telemetry) Shutdown(ctx context.Context) error {
	if t.TracerProvider == nil {
		return nil
	}
	return t.TracerProvider.Shutdown(ctx)
}

// Setup installs a global tracer provider exporting to endpoint over OTLP/HTTP.
// An empty endpoint leaves the global no-op provider in place.
func Setup(ctx context.Context, serviceName, endpoint string) (Telemetry, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return Telemetry{}, nil
	}

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return Telemetry{}, fmt.Errorf("telemetry resource: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, exporterTimeout)
	defer cancel()
	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return Telemetry{}, fmt.Errorf("telemetry exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(r),
	)
	otel.SetTracerProvider(tp)
	return Telemetry{TracerProvider: tp}, nil
}

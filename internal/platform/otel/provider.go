// Package otel wires opt-in OpenTelemetry tracing for kickback binaries.
package otel

import (
	"context"
	"fmt"

	"github.com/louisbranch/kickback/internal/platform/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Shutdown flushes and stops the tracer provider.
type Shutdown func(context.Context) error

// Settings are read from KICKBACK_OTEL_* variables. Export needs both
// Enabled and a non-empty Endpoint.
type Settings struct {
	Enabled     bool    `env:"OTEL_ENABLED" envDefault:"true"`
	Endpoint    string  `env:"OTEL_ENDPOINT"`
	SampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`
}

func (s Settings) exporting() bool {
	return s.Enabled && s.Endpoint != ""
}

func (s Settings) validate() error {
	if s.SampleRatio < 0 || s.SampleRatio > 1 {
		return fmt.Errorf("otel sample ratio %v is outside [0,1]", s.SampleRatio)
	}
	return nil
}

// Setup loads Settings from the environment and calls Install.
func Setup(ctx context.Context, service string) (Shutdown, error) {
	settings, err := config.Load[Settings]()
	if err != nil {
		return discard, err
	}
	return Install(ctx, service, settings)
}

// Install registers a global OTLP/HTTP tracer provider for service. When
// settings do not export, nothing is registered and the Shutdown is a no-op.
func Install(ctx context.Context, service string, settings Settings) (Shutdown, error) {
	if !settings.exporting() {
		return discard, nil
	}
	if err := settings.validate(); err != nil {
		return discard, err
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(settings.Endpoint))
	if err != nil {
		return discard, fmt.Errorf("otlp exporter: %w", err)
	}
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(service)))
	if err != nil {
		return discard, fmt.Errorf("otel resource: %w", err)
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(settings.SampleRatio))),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return provider.Shutdown, nil
}

func discard(context.Context) error { return nil }

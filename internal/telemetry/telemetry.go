// Package telemetry provides OpenTelemetry tracing for battles, exported
// to Honeycomb over OTLP HTTP.
package telemetry

import (
	"context"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const instrumentationPrefix = "bandbattle/"

// Config describes the traced process.
type Config struct {
	ServiceName    string
	ServiceVersion string
	// Exporter replaces the OTLP exporter. Spans sent to it are exported as
	// soon as they end.
	Exporter sdktrace.SpanExporter
}

// DefaultConfig names the service after the game.
func DefaultConfig() Config {
	return Config{ServiceName: "bandbattle", ServiceVersion: "0.2.0"}
}

// Setup registers a global tracer provider. Without a custom exporter it
// sends batches over OTLP HTTP, configured through the standard OTEL_*
// environment variables:
//   - OTEL_EXPORTER_OTLP_ENDPOINT: Honeycomb endpoint (https://api.honeycomb.io)
//   - OTEL_EXPORTER_OTLP_HEADERS: Headers including x-honeycomb-team=<api-key>
//
// The returned function flushes and stops the provider.
func Setup(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultConfig().ServiceName
	}

	// The resource is built from scratch; merging with resource.Default()
	// fails on schema URL conflicts.
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("service.version", cfg.ServiceVersion),
			attribute.String("telemetry.sdk.language", "go"),
			attribute.String("telemetry.sdk.name", "opentelemetry"),
			attribute.String("host.name", hostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.name", "go"),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
	if err != nil {
		return nil, err
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if cfg.Exporter != nil {
		opts = append(opts, sdktrace.WithSyncer(cfg.Exporter))
	} else {
		exporter, err := otlptracehttp.New(ctx)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp.Shutdown, nil
}

// Tracer returns a named tracer for a component. Before Setup, or when it
// failed, the global no-op provider hands out tracers that record nothing.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(instrumentationPrefix + name)
}

// Disable installs a no-op provider.
func Disable() {
	otel.SetTracerProvider(noop.NewTracerProvider())
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}

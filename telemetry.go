package msgtrans

import (
	"context"
	"errors"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// tracer is the package-level tracer used by all instrumented code.
// Initialized to a noop tracer so library consumers can call Generate
// without InitTracer. When InitTracer is called, this is replaced.
var tracer trace.Tracer = noop.NewTracerProvider().Tracer("msgtrans")

// instruments are the pass counters, noop until InitMeter is called.
var instruments = newInstruments(metricnoop.NewMeterProvider().Meter("msgtrans"))

type passInstruments struct {
	emitted     metric.Int64Counter
	synthesized metric.Int64Counter
	diagnostics metric.Int64Counter
}

func newInstruments(m metric.Meter) passInstruments {
	emitted, _ := m.Int64Counter("msgtrans.classes.emitted",
		metric.WithDescription("Generated types written, primary and translated"))
	synthesized, _ := m.Int64Counter("msgtrans.classes.synthesized",
		metric.WithDescription("Empty types generated for missing ancestor locales"))
	diagnostics, _ := m.Int64Counter("msgtrans.diagnostics",
		metric.WithDescription("Diagnostics reported, by severity"))
	return passInstruments{emitted: emitted, synthesized: synthesized, diagnostics: diagnostics}
}

func recordClass(ctx context.Context, c ClassModel) {
	attrs := metric.WithAttributes(attribute.String("msgtrans.interface", c.Interface.QualifiedName()))
	instruments.emitted.Add(ctx, 1, attrs)
	if c.Synthetic {
		instruments.synthesized.Add(ctx, 1, attrs)
	}
}

func recordDiagnostics(ctx context.Context, diags []Diagnostic) {
	for _, d := range diags {
		instruments.diagnostics.Add(ctx, 1, metric.WithAttributes(attribute.String("msgtrans.severity", d.Severity.String())))
	}
}

func telemetryResource(serviceName, ver string) *resource.Resource {
	res, _ := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(ver),
		),
	)
	return res
}

// InitTracer sets up the OpenTelemetry TracerProvider.
// If OTEL_EXPORTER_OTLP_ENDPOINT is set, it creates an OTLP HTTP exporter
// with a BatchSpanProcessor. Otherwise, it uses the noop TracerProvider.
// Returns a shutdown function that flushes and closes the exporter.
func InitTracer(serviceName, ver string) func(context.Context) error {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		// Keep the noop tracer so spans never leak into a host's global provider.
		return func(context.Context) error { return nil }
	}

	exp, err := otlptracehttp.New(context.Background())
	if err != nil {
		// Keep noop so the CLI is not blocked.
		return func(context.Context) error { return nil }
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(telemetryResource(serviceName, ver)),
	)
	otel.SetTracerProvider(tp)
	tracer = tp.Tracer(serviceName)

	return func(ctx context.Context) error {
		return tp.Shutdown(ctx)
	}
}

// InitMeter mirrors InitTracer for the pass counters: OTLP HTTP metrics when
// OTEL_EXPORTER_OTLP_ENDPOINT is set, noop otherwise.
func InitMeter(serviceName, ver string) func(context.Context) error {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		return func(context.Context) error { return nil }
	}

	exp, err := otlpmetrichttp.New(context.Background())
	if err != nil {
		return func(context.Context) error { return nil }
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(telemetryResource(serviceName, ver)),
	)
	otel.SetMeterProvider(mp)
	instruments = newInstruments(mp.Meter(serviceName))

	return func(ctx context.Context) error {
		return errors.Join(mp.ForceFlush(ctx), mp.Shutdown(ctx))
	}
}

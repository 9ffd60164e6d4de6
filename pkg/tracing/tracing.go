// Package tracing installs the global OpenTelemetry provider of a binary.
package tracing

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda/xrayconfig"
	"go.opentelemetry.io/contrib/propagators/aws/xray"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"google.golang.org/grpc"
)

type ShutdownFunc func(context.Context) error

// Lambda sets up X-Ray tracing and wraps handler so every invocation gets a span.
func Lambda(ctx context.Context, handler interface{}) (interface{}, ShutdownFunc, error) {
	tp, err := xrayconfig.NewTracerProvider(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create xray tracer provider: %w", err)
	}
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(xray.Propagator{})

	return otellambda.InstrumentHandler(handler, xrayconfig.WithRecommendedOptions(tp)...), tp.Shutdown, nil
}

// Local exports spans over OTLP gRPC to OTEL_EXPORTER_OTLP_ENDPOINT. Without an
// endpoint spans are sampled but never exported.
func Local(ctx context.Context, serviceName string) (ShutdownFunc, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			// the service name used to display traces in backends
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
	}

	if target := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); target != "" {
		traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithEndpoint(target), otlptracegrpc.WithInsecure(), otlptracegrpc.WithDialOption(grpc.WithBlock()))
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithSpanProcessor(sdktrace.NewBatchSpanProcessor(traceExporter)))
	}

	tracerProvider := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tracerProvider)

	// set global propagator to tracecontext (the default is no-op).
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tracerProvider.Shutdown, nil
}

package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/trace"
)

// setupOTelSDK bootstraps the OpenTelemetry pipeline.
// If it does not return an error, make sure to call shutdown for proper cleanup.
func setupOTelSDK(ctx context.Context) (func(context.Context) error, error) {
	var shutdownFuncs []func(context.Context) error
	var err error

	// shutdown calls cleanup functions registered via shutdownFuncs.
	// The errors from the calls are joined.
	// Each registered cleanup will be invoked once.
	shutdown := func(ctx context.Context) error {
		var err error
		for _, fn := range shutdownFuncs {
			err = errors.Join(err, fn(ctx))
		}
		shutdownFuncs = nil
		return err
	}

	// handleErr calls shutdown for cleanup and makes sure that all errors are returned.
	handleErr := func(inErr error) {
		err = errors.Join(inErr, shutdown(ctx))
	}

	// Set up propagator.
	prop := newPropagator()
	otel.SetTextMapPropagator(prop)

	res, err := newResource(ctx)
	if err != nil {
		handleErr(err)
		return shutdown, err
	}

	// Set up trace provider.
	tracerProvider, err := newTracerProvider(ctx, res)
	if err != nil {
		handleErr(err)
		return shutdown, err
	}
	shutdownFuncs = append(shutdownFuncs, tracerProvider.Shutdown)
	otel.SetTracerProvider(tracerProvider)

	// Set up logger provider.
	loggerProvider, err := newLoggerProvider(ctx, res)
	if err != nil {
		handleErr(err)
		return shutdown, err
	}
	shutdownFuncs = append(shutdownFuncs, loggerProvider.Shutdown)
	global.SetLoggerProvider(loggerProvider)

	slog.SetDefault(slog.New(otelslog.NewHandler(serviceName)))

	return shutdown, err
}

func newPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
}

// newResource describes this process; OTEL_RESOURCE_ATTRIBUTES and
// OTEL_SERVICE_NAME take precedence.
func newResource(ctx context.Context) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithAttributes(attribute.String("service.name", serviceName)),
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
	)
}

// Signal selection follows the OTEL_*_EXPORTER and OTEL_EXPORTER_OTLP_*_PROTOCOL
// environment variables. Only "console" and "otlp" exporters and the
// "grpc" and "http/protobuf" protocols are wired.
const (
	signalTraces = "TRACES"
	signalLogs   = "LOGS"
)

// exporterKind reads OTEL_<SIGNAL>_EXPORTER and resolves "otlp" down to
// the OTLP protocol, so callers switch on "console", "grpc" or
// "http/protobuf".
func exporterKind(signal string) (string, error) {
	exporter := os.Getenv("OTEL_" + signal + "_EXPORTER")
	switch exporter {
	case "", "console":
		return "console", nil
	case "otlp":
	default:
		return "", fmt.Errorf("unsupported %s exporter: %s", strings.ToLower(signal), exporter)
	}

	protocol := cmp.Or(
		os.Getenv("OTEL_EXPORTER_OTLP_"+signal+"_PROTOCOL"),
		os.Getenv("OTEL_EXPORTER_OTLP_PROTOCOL"),
		"grpc",
	)
	switch protocol {
	case "grpc", "http/protobuf":
		return protocol, nil
	default:
		return "", fmt.Errorf("unsupported %s protocol: %s", strings.ToLower(signal), protocol)
	}
}

func newTracerProvider(ctx context.Context, res *resource.Resource) (*trace.TracerProvider, error) {
	traceExporter, err := newTracerExporter(ctx)
	if err != nil {
		return nil, err
	}

	return trace.NewTracerProvider(
		trace.WithBatcher(traceExporter),
		trace.WithResource(res),
	), nil
}

func newTracerExporter(ctx context.Context) (trace.SpanExporter, error) {
	kind, err := exporterKind(signalTraces)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "grpc":
		return otlptracegrpc.New(ctx)
	case "http/protobuf":
		return otlptracehttp.New(ctx)
	default:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
}

func newLoggerProvider(ctx context.Context, res *resource.Resource) (*log.LoggerProvider, error) {
	logExporter, err := newLoggerExporter(ctx)
	if err != nil {
		return nil, err
	}

	return log.NewLoggerProvider(
		log.WithProcessor(log.NewBatchProcessor(logExporter)),
		log.WithResource(res),
	), nil
}

func newLoggerExporter(ctx context.Context) (log.Exporter, error) {
	kind, err := exporterKind(signalLogs)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "grpc":
		return otlploggrpc.New(ctx)
	case "http/protobuf":
		return otlploghttp.New(ctx)
	default:
		return stdoutlog.New()
	}
}

package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"govinfo-billstatus/internal/components/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	setupTimeout    = time.Second * 15
	exporterTimeout = time.Second * 3
	metricInterval  = time.Second * 5
)

// OtlpConnConfig points one signal at a collector. GrpcEndpoint wins when
// both endpoints are set.
type OtlpConnConfig struct {
	GrpcEndpoint string            `json:"grpc_endpoint"`
	HttpEndpoint string            `json:"http_endpoint"`
	Headers      map[string]string `json:"headers"`
}

func (c OtlpConnConfig) useGrpc() bool {
	return c.GrpcEndpoint != ""
}

func (c OtlpConnConfig) logExporter(signal string) {
	transport, endpoint := "http", c.HttpEndpoint
	if c.useGrpc() {
		transport, endpoint = "grpc", c.GrpcEndpoint
	}
	slog.Info(
		"otlp exporter configured",
		"signal", signal,
		"transport", transport,
		"endpoint", endpoint,
		"headers", len(c.Headers),
	)
}

type OtlpConfig struct {
	Traces  OtlpConnConfig `json:"traces"`
	Metrics OtlpConnConfig `json:"metrics"`
}

// Config is the shape of telemetry.json5.
type Config struct {
	Otlp OtlpConfig `json:"otlp"`
}

// Otel holds the global providers installed by Setup.
type Otel struct {
	TracerProvider *trace.TracerProvider
	MeterProvider  *metric.MeterProvider
}

// Shutdown flushes and stops both providers.
func (t Otel) Shutdown(ctx context.Context) error {
	return errors.Join(
		t.TracerProvider.Shutdown(ctx),
		t.MeterProvider.Shutdown(ctx),
	)
}

// SetupFromEnv is Setup with the config read from the nearest telemetry.json5
// above the working directory. A missing file is os.ErrNotExist.
func SetupFromEnv(ctx context.Context, serviceName string) (Otel, error) {
	cfg, err := config.ReadRecursively[Config]("telemetry.json5")
	if err != nil {
		return Otel{}, err
	}
	return Setup(ctx, serviceName, cfg)
}

// Setup installs otlp-exporting trace and meter providers as the otel globals.
func Setup(ctx context.Context, serviceName string, cfg Config) (Otel, error) {
	ctx, cancel := context.WithTimeout(ctx, setupTimeout)
	defer cancel()

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return Otel{}, err
	}

	spanExporter, err := newSpanExporter(ctx, cfg.Otlp.Traces)
	if err != nil {
		return Otel{}, err
	}
	metricExporter, err := newMetricExporter(ctx, cfg.Otlp.Metrics)
	if err != nil {
		return Otel{}, errors.Join(err, spanExporter.Shutdown(ctx))
	}

	t := Otel{
		TracerProvider: trace.NewTracerProvider(
			trace.WithBatcher(spanExporter),
			trace.WithResource(res),
		),
		MeterProvider: metric.NewMeterProvider(
			metric.WithReader(metric.NewPeriodicReader(metricExporter, metric.WithInterval(metricInterval))),
			metric.WithResource(res),
		),
	}
	otel.SetTracerProvider(t.TracerProvider)
	otel.SetMeterProvider(t.MeterProvider)
	return t, nil
}

func newSpanExporter(ctx context.Context, c OtlpConnConfig) (trace.SpanExporter, error) {
	ctx, cancel := context.WithTimeout(ctx, exporterTimeout)
	defer cancel()
	c.logExporter("traces")

	if c.useGrpc() {
		return otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpointURL(c.GrpcEndpoint),
			otlptracegrpc.WithHeaders(c.Headers),
		)
	}
	return otlptracehttp.New(
		ctx,
		otlptracehttp.WithEndpointURL(c.HttpEndpoint),
		otlptracehttp.WithHeaders(c.Headers),
	)
}

func newMetricExporter(ctx context.Context, c OtlpConnConfig) (metric.Exporter, error) {
	ctx, cancel := context.WithTimeout(ctx, exporterTimeout)
	defer cancel()
	c.logExporter("metrics")

	if c.useGrpc() {
		return otlpmetricgrpc.New(
			ctx,
			otlpmetricgrpc.WithEndpointURL(c.GrpcEndpoint),
			otlpmetricgrpc.WithHeaders(c.Headers),
		)
	}
	return otlpmetrichttp.New(
		ctx,
		otlpmetrichttp.WithEndpointURL(c.HttpEndpoint),
		otlpmetrichttp.WithHeaders(c.Headers),
	)
}

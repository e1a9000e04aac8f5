package telemetry

import (
	"context"
	"fmt"

	"github.com/mrops-br/storefront-api/internal/infrastructure/config"
	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"google.golang.org/grpc"
)

const serviceVersion = "1.0.0"

func newResource(ctx context.Context, cfg *config.OTLPConfig) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", cfg.ServiceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("deployment.environment", cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// newPrometheusReader exposes OTel instruments on registry for /metrics
func newPrometheusReader(registry *promclient.Registry) (metric.Reader, error) {
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}
	return exporter, nil
}

// initMeterProvider builds a meter provider with OTLP and Prometheus readers.
// conn may be nil, in which case only the Prometheus reader is attached.
func initMeterProvider(ctx context.Context, conn *grpc.ClientConn, registry *promclient.Registry, res *resource.Resource) (*metric.MeterProvider, error) {
	promReader, err := newPrometheusReader(registry)
	if err != nil {
		return nil, err
	}

	opts := []metric.Option{
		metric.WithReader(promReader),
		metric.WithResource(res),
	}

	if conn != nil {
		exporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
		if err != nil {
			return nil, fmt.Errorf("failed to create metric exporter: %w", err)
		}
		opts = append(opts, metric.WithReader(metric.NewPeriodicReader(exporter)))
	}

	return metric.NewMeterProvider(opts...), nil
}

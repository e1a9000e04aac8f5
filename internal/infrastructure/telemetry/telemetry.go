package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mrops-br/storefront-api/internal/infrastructure/config"
	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
)

const instrumentationName = "storefront-api"

// Telemetry holds all OpenTelemetry components
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Registry       *promclient.Registry
	Logger         *slog.Logger

	conn *grpc.ClientConn
}

// NewTelemetry initializes tracing, metrics and logging. With export disabled the
// providers only feed the Prometheus registry.
func NewTelemetry(cfg *config.OTLPConfig, level slog.Level) (*Telemetry, error) {
	return newTelemetry(context.Background(), cfg, level, os.Stdout)
}

func newTelemetry(ctx context.Context, cfg *config.OTLPConfig, level slog.Level, out io.Writer) (*Telemetry, error) {
	logger := initLogger(cfg, level, out)

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	t := &Telemetry{
		Registry: promclient.NewRegistry(),
		Logger:   logger,
	}

	if cfg.Enabled {
		logger.Info("Initializing OpenTelemetry",
			slog.String("endpoint", cfg.Endpoint),
			slog.String("service_name", cfg.ServiceName),
		)

		t.conn, err = dialCollector(cfg)
		if err != nil {
			return nil, err
		}
		t.TracerProvider, err = initTracerProvider(ctx, t.conn, res)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tracer provider: %w", err)
		}
	} else {
		t.TracerProvider = sdktrace.NewTracerProvider(sdktrace.WithResource(res))
	}

	t.MeterProvider, err = initMeterProvider(ctx, t.conn, t.Registry, res)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize meter provider: %w", err)
	}

	otel.SetTracerProvider(t.TracerProvider)
	otel.SetMeterProvider(t.MeterProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if cfg.Enabled {
		logger.Info("Telemetry initialized (OTLP + Prometheus exporters)")
	} else {
		logger.Info("Telemetry initialized in no-op mode (export disabled, Prometheus only)")
	}
	return t, nil
}

// Tracer returns the application tracer
func (t *Telemetry) Tracer() trace.Tracer {
	return t.TracerProvider.Tracer(instrumentationName)
}

// Meter returns the application meter
func (t *Telemetry) Meter() metric.Meter {
	return t.MeterProvider.Meter(instrumentationName)
}

// Shutdown flushes and stops all telemetry components
func (t *Telemetry) Shutdown(ctx context.Context) error {
	t.Logger.Info("Shutting down OpenTelemetry")

	var errs []error
	if err := t.TracerProvider.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("tracer provider: %w", err))
	}
	if err := t.MeterProvider.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("meter provider: %w", err))
	}
	if t.conn != nil {
		if err := t.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("collector connection: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		t.Logger.Error("Failed to shutdown telemetry", slog.String("error", err.Error()))
		return err
	}
	t.Logger.Info("OpenTelemetry shutdown successfully")
	return nil
}

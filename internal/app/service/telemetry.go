package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Settings carries the request-independent options of the page loaders
type Settings struct {
	PageSize int
	StoreURL string
}

func newLoadCounter(meter metric.Meter) metric.Int64Counter {
	counter, _ := meter.Int64Counter(
		"storefront.loads",
		metric.WithDescription("Total number of page loads by page and result"),
	)
	return counter
}

// result classifies an error for metric attributes
func result(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrCartNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrStorefrontNotConfigured):
		return "not_configured"
	case errors.Is(err, domain.ErrInvalidCartAction), errors.Is(err, domain.ErrVariantNotFound):
		return "invalid"
	default:
		return "failure"
	}
}

func recordLoad(ctx context.Context, counter metric.Int64Counter, page string, err error) {
	counter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("page", page),
			attribute.String("result", result(err)),
		),
	)
}

// fail marks the span and logs. Not-found and invalid input are warnings, the rest errors.
func fail(ctx context.Context, span trace.Span, logger *slog.Logger, msg string, err error, attrs ...any) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)

	attrs = append(attrs, slog.String("error", err.Error()))
	switch result(err) {
	case "not_found", "invalid":
		logger.WarnContext(ctx, msg, attrs...)
	default:
		logger.ErrorContext(ctx, msg, attrs...)
	}
	return err
}

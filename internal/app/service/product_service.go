package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/app/variant"
	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// ProductService loads product detail pages
type ProductService struct {
	storefront domain.Storefront
	settings   Settings
	tracer     trace.Tracer
	logger     *slog.Logger
	loads      metric.Int64Counter
}

// NewProductService creates a new product service
func NewProductService(
	storefront domain.Storefront,
	settings Settings,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *ProductService {
	return &ProductService{
		storefront: storefront,
		settings:   settings,
		tracer:     tracer,
		logger:     logger,
		loads:      newLoadCounter(meter),
	}
}

// Load fetches the product and its recommendations concurrently, resolves the variant
// selected by params and assembles the page. A failed recommendations read leaves the
// list empty; a failed product read fails the load.
func (s *ProductService) Load(ctx context.Context, handle string, params url.Values) (detail *dto.ProductDetail, err error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.Load")
	defer span.End()
	defer func() { recordLoad(ctx, s.loads, "product", err) }()

	span.SetAttributes(attribute.String("product.handle", handle))

	if s.storefront == nil {
		return nil, fail(ctx, span, s.logger, "Storefront not configured", domain.ErrStorefrontNotConfigured)
	}
	if handle == "" {
		return nil, fail(ctx, span, s.logger, "Product handle missing",
			fmt.Errorf("%w: %w", domain.ErrNotFound, domain.ErrMissingHandle))
	}

	s.logger.InfoContext(ctx, "Loading product", slog.String("handle", handle))

	var (
		product         *domain.Product
		recommendations []domain.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.storefront.Product(gctx, handle)
		if err != nil {
			return err
		}
		product = p
		return nil
	})
	g.Go(func() error {
		recs, err := s.storefront.Recommendations(gctx, handle)
		if err != nil {
			s.logger.WarnContext(ctx, "Recommendations unavailable",
				slog.String("handle", handle),
				slog.String("error", err.Error()),
			)
			return nil
		}
		recommendations = recs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fail(ctx, span, s.logger, "Failed to load product", err, slog.String("handle", handle))
	}

	selection := variant.SelectionFromQuery(product, params)
	res := variant.Resolve(product, selection)

	detail = dto.ToProductDetail(product, res, withoutProduct(recommendations, product.ID), s.settings.StoreURL)

	if res.Variant != nil {
		span.SetAttributes(attribute.String("product.variant_id", res.Variant.ID))
	}
	span.SetAttributes(
		attribute.Bool("product.exact_match", res.ExactMatch),
		attribute.Int("product.recommendations", len(detail.Recommendations)),
	)
	span.SetStatus(codes.Ok, "Product loaded")

	s.logger.InfoContext(ctx, "Product loaded",
		slog.String("handle", handle),
		slog.Bool("exact_match", res.ExactMatch),
		slog.Int("recommendations", len(detail.Recommendations)),
	)
	return detail, nil
}

func withoutProduct(products []domain.Product, id string) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

package service

import (
	"context"
	"log/slog"

	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// FeaturedCount is the number of collections and products shown on the home page
const FeaturedCount = 8

// HomeService loads the home page
type HomeService struct {
	storefront domain.Storefront
	tracer     trace.Tracer
	logger     *slog.Logger
	loads      metric.Int64Counter
}

// NewHomeService creates a new home service
func NewHomeService(storefront domain.Storefront, tracer trace.Tracer, meter metric.Meter, logger *slog.Logger) *HomeService {
	return &HomeService{
		storefront: storefront,
		tracer:     tracer,
		logger:     logger,
		loads:      newLoadCounter(meter),
	}
}

// Load fetches featured collections and products concurrently
func (s *HomeService) Load(ctx context.Context) (view *dto.HomeView, err error) {
	ctx, span := s.tracer.Start(ctx, "HomeService.Load")
	defer span.End()
	defer func() { recordLoad(ctx, s.loads, "home", err) }()

	if s.storefront == nil {
		return nil, fail(ctx, span, s.logger, "Storefront not configured", domain.ErrStorefrontNotConfigured)
	}

	var (
		collections []domain.Collection
		products    []domain.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		collections, err = s.storefront.FeaturedCollections(gctx, FeaturedCount)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.storefront.FeaturedProducts(gctx, FeaturedCount)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fail(ctx, span, s.logger, "Failed to load home page", err)
	}

	view = dto.ToHomeView(collections, products)

	span.SetAttributes(
		attribute.Int("home.collections", len(view.FeaturedCollections)),
		attribute.Int("home.products", len(view.FeaturedProducts)),
	)
	span.SetStatus(codes.Ok, "Home page loaded")
	s.logger.InfoContext(ctx, "Home page loaded",
		slog.Int("collections", len(view.FeaturedCollections)),
		slog.Int("products", len(view.FeaturedProducts)),
	)
	return view, nil
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/app/query"
	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CollectionService loads collection listing pages
type CollectionService struct {
	storefront domain.Storefront
	settings   Settings
	tracer     trace.Tracer
	logger     *slog.Logger
	loads      metric.Int64Counter
}

// NewCollectionService creates a new collection service. storefront may be nil when
// the upstream is not configured.
func NewCollectionService(
	storefront domain.Storefront,
	settings Settings,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *CollectionService {
	if settings.PageSize <= 0 {
		settings.PageSize = query.DefaultPageSize
	}
	return &CollectionService{
		storefront: storefront,
		settings:   settings,
		tracer:     tracer,
		logger:     logger,
		loads:      newLoadCounter(meter),
	}
}

// Load compiles the request parameters into one upstream query and assembles the page
func (s *CollectionService) Load(ctx context.Context, handle string, params url.Values) (view *dto.CollectionView, err error) {
	ctx, span := s.tracer.Start(ctx, "CollectionService.Load")
	defer span.End()
	defer func() { recordLoad(ctx, s.loads, "collection", err) }()

	span.SetAttributes(attribute.String("collection.handle", handle))

	if s.storefront == nil {
		return nil, fail(ctx, span, s.logger, "Storefront not configured", domain.ErrStorefrontNotConfigured)
	}
	if handle == "" {
		return nil, fail(ctx, span, s.logger, "Collection handle missing",
			fmt.Errorf("%w: %w", domain.ErrNotFound, domain.ErrMissingHandle))
	}

	filters := query.CompileFilters(params)
	sortKey := query.ResolveSort(params)
	scope := query.Scope(handle, filters, sortKey)
	page := query.ResolvePage(params, s.settings.PageSize, scope)

	q := domain.CollectionQuery{
		Handle:  handle,
		SortKey: sortKey.Key,
		Reverse: sortKey.Reverse,
		Filters: filters.ProductFilters(),
	}
	page.Apply(&q)

	span.SetAttributes(
		attribute.String("collection.sort_key", sortKey.Key),
		attribute.Bool("collection.reverse", sortKey.Reverse),
		attribute.Int("collection.filters", len(q.Filters)),
		attribute.String("collection.direction", string(page.Direction)),
		attribute.Int("collection.page_size", page.PageSize),
	)

	s.logger.InfoContext(ctx, "Loading collection",
		slog.String("handle", handle),
		slog.String("sort_key", sortKey.Key),
		slog.Bool("reverse", sortKey.Reverse),
		slog.Int("filters", len(q.Filters)),
		slog.String("direction", string(page.Direction)),
	)

	collection, err := s.storefront.Collection(ctx, q)
	if err != nil {
		return nil, fail(ctx, span, s.logger, "Failed to load collection", err, slog.String("handle", handle))
	}

	view = dto.ToCollectionView(collection, dto.CollectionState{
		Filters:  filters,
		Sort:     sortKey,
		Scope:    scope,
		StoreURL: s.settings.StoreURL,
	})

	span.SetAttributes(attribute.Int("collection.products", view.ProductCount))
	span.SetStatus(codes.Ok, "Collection loaded")
	s.logger.InfoContext(ctx, "Collection loaded",
		slog.String("handle", handle),
		slog.Int("products", view.ProductCount),
		slog.Bool("has_next_page", view.PageInfo.HasNextPage),
	)
	return view, nil
}

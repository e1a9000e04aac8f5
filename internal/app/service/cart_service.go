package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mrops-br/storefront-api/internal/app/dto"
	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// CartService handles cart use cases
type CartService struct {
	repo       domain.CartRepository
	storefront domain.Storefront
	tracer     trace.Tracer
	logger     *slog.Logger
	operations metric.Int64Counter
}

// NewCartService creates a new cart service
func NewCartService(
	repo domain.CartRepository,
	storefront domain.Storefront,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *CartService {
	operations, _ := meter.Int64Counter(
		"storefront.cart.operations",
		metric.WithDescription("Total number of cart operations"),
	)
	return &CartService{
		repo:       repo,
		storefront: storefront,
		tracer:     tracer,
		logger:     logger,
		operations: operations,
	}
}

func (s *CartService) record(ctx context.Context, operation string, err error) {
	s.operations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result(err)),
		),
	)
}

// CreateCart creates an empty cart
func (s *CartService) CreateCart(ctx context.Context) (resp *dto.CartResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "CartService.CreateCart")
	defer span.End()
	defer func() { s.record(ctx, "create", err) }()

	cart := domain.NewCart()
	span.SetAttributes(attribute.String("cart.id", cart.ID))

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fail(ctx, span, s.logger, "Failed to store cart", err)
	}

	s.logger.InfoContext(ctx, "Cart created", slog.String("cart_id", cart.ID))
	span.SetStatus(codes.Ok, "Cart created")
	return dto.ToCartResponse(cart), nil
}

// GetCart retrieves a cart by ID
func (s *CartService) GetCart(ctx context.Context, id string) (resp *dto.CartResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "CartService.GetCart")
	defer span.End()
	defer func() { s.record(ctx, "read", err) }()

	span.SetAttributes(attribute.String("cart.id", id))

	cart, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fail(ctx, span, s.logger, "Cart not found", err, slog.String("cart_id", id))
	}

	span.SetStatus(codes.Ok, "Cart retrieved")
	return dto.ToCartResponse(cart), nil
}

// ApplyAction reduces an action into the stored cart. Lines added to the cart take
// their price and titles from the upstream product.
func (s *CartService) ApplyAction(ctx context.Context, id string, req *dto.CartActionRequest) (resp *dto.CartResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "CartService.ApplyAction")
	defer span.End()

	operation := actionName(req.Type)
	defer func() { s.record(ctx, operation, err) }()

	span.SetAttributes(
		attribute.String("cart.id", id),
		attribute.String("cart.action", operation),
		attribute.String("cart.variant_id", req.VariantID),
	)

	cart, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fail(ctx, span, s.logger, "Cart not found", err, slog.String("cart_id", id))
	}

	action, err := s.toAction(ctx, req)
	if err != nil {
		return nil, fail(ctx, span, s.logger, "Invalid cart action", err,
			slog.String("cart_id", id),
			slog.String("action", operation),
		)
	}

	next, err := domain.Reduce(*cart, action)
	if err != nil {
		return nil, fail(ctx, span, s.logger, "Invalid cart action", err,
			slog.String("cart_id", id),
			slog.String("action", operation),
		)
	}

	if err := s.repo.Save(ctx, &next); err != nil {
		return nil, fail(ctx, span, s.logger, "Failed to store cart", err, slog.String("cart_id", id))
	}

	s.logger.InfoContext(ctx, "Cart updated",
		slog.String("cart_id", id),
		slog.String("action", operation),
		slog.Int("item_count", next.ItemCount()),
	)
	span.SetStatus(codes.Ok, "Cart updated")
	return dto.ToCartResponse(&next), nil
}

// actionName bounds the operation attribute to the known actions
func actionName(raw string) string {
	if t := domain.CartActionType(raw); t.IsKnown() {
		return string(t)
	}
	return "invalid"
}

func (s *CartService) toAction(ctx context.Context, req *dto.CartActionRequest) (domain.CartAction, error) {
	action := domain.CartAction{
		Type:      domain.CartActionType(req.Type),
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Delta:     req.Delta,
	}
	if action.Type != domain.CartAdd {
		return action, nil
	}

	if req.ProductHandle == "" || req.VariantID == "" || req.Quantity < 0 {
		return action, domain.ErrInvalidCartAction
	}
	if s.storefront == nil {
		return action, domain.ErrStorefrontNotConfigured
	}

	product, err := s.storefront.Product(ctx, req.ProductHandle)
	if err != nil {
		return action, err
	}
	v := product.VariantByID(req.VariantID)
	if v == nil {
		return action, fmt.Errorf("%s in %s: %w", req.VariantID, req.ProductHandle, domain.ErrVariantNotFound)
	}
	if !v.AvailableForSale {
		return action, fmt.Errorf("%w: variant %s is not for sale", domain.ErrInvalidCartAction, v.ID)
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	line := domain.CartLine{
		ProductID:      product.ID,
		VariantID:      v.ID,
		Handle:         product.Handle,
		Title:          product.Title,
		VariantTitle:   v.Title,
		Price:          v.Price,
		CompareAtPrice: v.CompareAtPrice,
		Quantity:       quantity,
	}
	if img := v.Image; img != nil {
		line.ImageURL = img.URL
	} else if product.FeaturedImage != nil {
		line.ImageURL = product.FeaturedImage.URL
	} else if len(product.Images) > 0 {
		line.ImageURL = product.Images[0].URL
	}

	action.Line = line
	action.ProductID = product.ID
	return action, nil
}

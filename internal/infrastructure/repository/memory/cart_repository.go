package memory

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/mrops-br/storefront-api/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// CartRepository is an in-memory implementation of domain.CartRepository.
// Carts are copied in and out so callers never share line slices with the store.
type CartRepository struct {
	mu     sync.RWMutex
	carts  map[string]domain.Cart
	tracer trace.Tracer
	logger *slog.Logger
}

var _ domain.CartRepository = (*CartRepository)(nil)

// NewCartRepository creates a new in-memory cart repository
func NewCartRepository(tracer trace.Tracer, logger *slog.Logger) *CartRepository {
	return &CartRepository{
		carts:  make(map[string]domain.Cart),
		tracer: tracer,
		logger: logger,
	}
}

// Save creates or replaces a cart
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	ctx, span := r.tracer.Start(ctx, "CartRepository.Save")
	defer span.End()

	span.SetAttributes(
		attribute.String("cart.id", cart.ID),
		attribute.Int("cart.lines", len(cart.Lines)),
	)

	stored := *cart
	stored.Lines = slices.Clone(cart.Lines)

	r.mu.Lock()
	r.carts[cart.ID] = stored
	r.mu.Unlock()

	r.logger.DebugContext(ctx, "Cart saved in repository", slog.String("cart_id", cart.ID))
	span.SetStatus(codes.Ok, "Cart saved")
	return nil
}

// FindByID retrieves a cart by ID
func (r *CartRepository) FindByID(ctx context.Context, id string) (*domain.Cart, error) {
	ctx, span := r.tracer.Start(ctx, "CartRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.String("cart.id", id))

	r.mu.RLock()
	stored, exists := r.carts[id]
	r.mu.RUnlock()

	if !exists {
		span.RecordError(domain.ErrCartNotFound)
		span.SetStatus(codes.Error, "Cart not found")
		r.logger.WarnContext(ctx, "Cart not found", slog.String("cart_id", id))
		return nil, domain.ErrCartNotFound
	}

	cart := stored
	cart.Lines = slices.Clone(stored.Lines)

	span.SetStatus(codes.Ok, "Cart found")
	return &cart, nil
}

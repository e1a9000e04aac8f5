package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mrops-br/storefront-api/internal/domain"
	goredis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const keyPrefix = "storefront:cart:"

// CartRepository stores carts as JSON documents in Redis with a sliding TTL
type CartRepository struct {
	client *goredis.Client
	ttl    time.Duration
	tracer trace.Tracer
	logger *slog.Logger
}

var _ domain.CartRepository = (*CartRepository)(nil)

// NewCartRepository creates a Redis-backed cart repository. A zero ttl keeps carts forever.
func NewCartRepository(client *goredis.Client, ttl time.Duration, tracer trace.Tracer, logger *slog.Logger) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
		tracer: tracer,
		logger: logger,
	}
}

func cartKey(id string) string {
	return keyPrefix + id
}

// Save creates or replaces a cart and refreshes its expiry
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	ctx, span := r.tracer.Start(ctx, "RedisCartRepository.Save")
	defer span.End()

	span.SetAttributes(attribute.String("cart.id", cart.ID))

	payload, err := json.Marshal(cart)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to encode cart")
		return fmt.Errorf("failed to encode cart %s: %w", cart.ID, err)
	}

	if err := r.client.Set(ctx, cartKey(cart.ID), payload, r.ttl).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to store cart")
		r.logger.ErrorContext(ctx, "Failed to store cart in redis",
			slog.String("cart_id", cart.ID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to store cart %s: %w", cart.ID, err)
	}

	span.SetStatus(codes.Ok, "Cart saved")
	return nil
}

// FindByID retrieves a cart by ID
func (r *CartRepository) FindByID(ctx context.Context, id string) (*domain.Cart, error) {
	ctx, span := r.tracer.Start(ctx, "RedisCartRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.String("cart.id", id))

	payload, err := r.client.Get(ctx, cartKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			span.SetStatus(codes.Error, "Cart not found")
			r.logger.WarnContext(ctx, "Cart not found", slog.String("cart_id", id))
			return nil, domain.ErrCartNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to read cart")
		return nil, fmt.Errorf("failed to read cart %s: %w", id, err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(payload, &cart); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to decode cart")
		return nil, fmt.Errorf("failed to decode cart %s: %w", id, err)
	}

	span.SetStatus(codes.Ok, "Cart found")
	return &cart, nil
}

// Ping checks connectivity
func (r *CartRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

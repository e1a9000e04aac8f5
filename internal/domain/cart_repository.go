package domain

import "context"

// CartRepository defines the contract for cart storage
type CartRepository interface {
	Save(ctx context.Context, cart *Cart) error
	FindByID(ctx context.Context, id string) (*Cart, error)
}

package domain

import "context"

// PriceRangeFilter bounds the minimum variant price of a product
type PriceRangeFilter struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// ProductFilter is a single entry of the upstream ProductFilter list.
// Exactly one field is set per entry.
type ProductFilter struct {
	Price         *PriceRangeFilter `json:"price,omitempty"`
	ProductType   string            `json:"productType,omitempty"`
	ProductVendor string            `json:"productVendor,omitempty"`
	Available     *bool             `json:"available,omitempty"`
}

// CollectionQuery describes one page of a collection listing
type CollectionQuery struct {
	Handle  string
	SortKey string
	Reverse bool
	Filters []ProductFilter

	// Forward pagination
	First int
	After string

	// Backward pagination
	Last   int
	Before string
}

// Storefront defines the contract for the upstream commerce API
type Storefront interface {
	Collection(ctx context.Context, q CollectionQuery) (*Collection, error)
	Product(ctx context.Context, handle string) (*Product, error)
	Recommendations(ctx context.Context, handle string) ([]Product, error)
	FeaturedCollections(ctx context.Context, first int) ([]Collection, error)
	FeaturedProducts(ctx context.Context, first int) ([]Product, error)
}

package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrMissingHandle           = errors.New("expected handle")
	ErrStorefrontNotConfigured = errors.New("storefront client is not configured: check SHOPIFY_STORE_DOMAIN and SHOPIFY_STOREFRONT_API_TOKEN")
	ErrUpstreamUnavailable     = errors.New("storefront API is temporarily unavailable")
	ErrCartNotFound            = errors.New("cart not found")
	ErrInvalidCartAction       = errors.New("invalid cart action")
	ErrVariantNotFound         = errors.New("variant not found")
)

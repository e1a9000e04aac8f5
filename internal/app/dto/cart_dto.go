package dto

import (
	"time"

	"github.com/mrops-br/storefront-api/internal/domain"
)

// CartActionRequest represents a cart action posted by the client.
// Prices are never read from the client.
type CartActionRequest struct {
	Type          string `json:"type"`
	ProductHandle string `json:"productHandle"`
	ProductID     string `json:"productId"`
	VariantID     string `json:"variantId"`
	Quantity      int    `json:"quantity"`
	Delta         int    `json:"delta"`
}

// CartLineView represents a cart line
type CartLineView struct {
	ProductID      string     `json:"productId"`
	VariantID      string     `json:"variantId"`
	Handle         string     `json:"handle"`
	Title          string     `json:"title"`
	VariantTitle   string     `json:"variantTitle,omitempty"`
	ImageURL       string     `json:"imageUrl,omitempty"`
	Quantity       int        `json:"quantity"`
	Price          MoneyView  `json:"price"`
	CompareAtPrice *MoneyView `json:"compareAtPrice,omitempty"`
	LineTotal      MoneyView  `json:"lineTotal"`
}

// CartResponse represents the cart response
type CartResponse struct {
	ID        string         `json:"id"`
	Lines     []CartLineView `json:"lines"`
	ItemCount int            `json:"itemCount"`
	Subtotal  MoneyView      `json:"subtotal"`
	Savings   MoneyView      `json:"savings"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ToCartResponse converts a domain cart
func ToCartResponse(c *domain.Cart) *CartResponse {
	lines := make([]CartLineView, len(c.Lines))
	for i, l := range c.Lines {
		lines[i] = CartLineView{
			ProductID:      l.ProductID,
			VariantID:      l.VariantID,
			Handle:         l.Handle,
			Title:          l.Title,
			VariantTitle:   l.VariantTitle,
			ImageURL:       l.ImageURL,
			Quantity:       l.Quantity,
			Price:          ToMoneyView(l.Price),
			CompareAtPrice: toMoneyViewPtr(l.CompareAtPrice),
			LineTotal:      ToMoneyView(l.Price.Mul(l.Quantity)),
		}
	}
	return &CartResponse{
		ID:        c.ID,
		Lines:     lines,
		ItemCount: c.ItemCount(),
		Subtotal:  ToMoneyView(c.Subtotal()),
		Savings:   ToMoneyView(c.Savings()),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

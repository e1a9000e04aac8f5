package domain

import (
	"time"

	"github.com/google/uuid"
)

// CartActionType names a cart state transition
type CartActionType string

const (
	CartAdd            CartActionType = "add"
	CartRemove         CartActionType = "remove"
	CartUpdateQuantity CartActionType = "update_quantity"
)

// MaxLineQuantity bounds the quantity of a single line and the size of one action
const MaxLineQuantity = 999

// IsKnown reports whether t is one of the supported actions
func (t CartActionType) IsKnown() bool {
	switch t {
	case CartAdd, CartRemove, CartUpdateQuantity:
		return true
	}
	return false
}

// CartLine is a cart entry keyed by product and variant
type CartLine struct {
	ProductID      string
	VariantID      string
	Handle         string
	Title          string
	VariantTitle   string
	ImageURL       string
	Price          Money
	CompareAtPrice *Money
	Quantity       int
}

// Cart is an ordered list of lines
type Cart struct {
	ID        string
	Lines     []CartLine
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartAction is an input to Reduce.
// Line is read by add; Delta by update_quantity; ProductID/VariantID by remove and update_quantity.
type CartAction struct {
	Type      CartActionType
	ProductID string
	VariantID string
	Delta     int
	Line      CartLine
}

// NewCart creates an empty cart
func NewCart() *Cart {
	now := time.Now()
	return &Cart{
		ID:        uuid.New().String(),
		Lines:     []CartLine{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks an action before it is reduced
func (a CartAction) Validate() error {
	switch a.Type {
	case CartAdd:
		if a.Line.ProductID == "" || a.Line.VariantID == "" || a.Line.Quantity < 1 || a.Line.Quantity > MaxLineQuantity {
			return ErrInvalidCartAction
		}
	case CartRemove:
		if a.ProductID == "" || a.VariantID == "" {
			return ErrInvalidCartAction
		}
	case CartUpdateQuantity:
		if a.ProductID == "" || a.VariantID == "" || a.Delta == 0 ||
			a.Delta > MaxLineQuantity || a.Delta < -MaxLineQuantity {
			return ErrInvalidCartAction
		}
	default:
		return ErrInvalidCartAction
	}
	return nil
}

// Reduce applies an action and returns the next cart state. The input is not modified.
func Reduce(c Cart, a CartAction) (Cart, error) {
	if err := a.Validate(); err != nil {
		return c, err
	}

	next := c
	next.Lines = make([]CartLine, 0, len(c.Lines)+1)

	switch a.Type {
	case CartAdd:
		merged := false
		for _, l := range c.Lines {
			if l.ProductID == a.Line.ProductID && l.VariantID == a.Line.VariantID {
				l.Quantity = clampQuantity(l.Quantity + a.Line.Quantity)
				merged = true
			}
			next.Lines = append(next.Lines, l)
		}
		if !merged {
			next.Lines = append(next.Lines, a.Line)
		}

	case CartRemove:
		for _, l := range c.Lines {
			if l.ProductID == a.ProductID && l.VariantID == a.VariantID {
				continue
			}
			next.Lines = append(next.Lines, l)
		}

	case CartUpdateQuantity:
		for _, l := range c.Lines {
			if l.ProductID == a.ProductID && l.VariantID == a.VariantID {
				l.Quantity = clampQuantity(l.Quantity + a.Delta)
			}
			next.Lines = append(next.Lines, l)
		}
	}

	next.UpdatedAt = time.Now()
	return next, nil
}

func clampQuantity(q int) int {
	return min(MaxLineQuantity, max(1, q))
}

// ItemCount is the total quantity across lines
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Subtotal sums price * quantity. The currency of the first line is used.
func (c *Cart) Subtotal() Money {
	var total Money
	for i, l := range c.Lines {
		if i == 0 {
			total.CurrencyCode = l.Price.CurrencyCode
		}
		total = total.Add(l.Price.Mul(l.Quantity))
	}
	return total
}

// Savings sums (compareAt - price) * quantity over discounted lines
func (c *Cart) Savings() Money {
	var total Money
	for i, l := range c.Lines {
		if i == 0 {
			total.CurrencyCode = l.Price.CurrencyCode
		}
		if l.CompareAtPrice != nil && l.CompareAtPrice.GreaterThan(l.Price) {
			total = total.Add(l.CompareAtPrice.Sub(l.Price).Mul(l.Quantity))
		}
	}
	return total
}

package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an immutable amount in a given ISO 4217 currency.
type Money struct {
	Amount       decimal.Decimal
	CurrencyCode string
}

// NewMoney creates a Money value
func NewMoney(amount decimal.Decimal, currencyCode string) Money {
	return Money{Amount: amount, CurrencyCode: currencyCode}
}

// ParseMoney parses a decimal string as returned by the storefront API
func ParseMoney(amount, currencyCode string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money amount %q: %w", amount, err)
	}
	return NewMoney(d, currencyCode), nil
}

// IsZero reports whether the amount is zero
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// GreaterThan compares amounts only; currencies are assumed equal
func (m Money) GreaterThan(other Money) bool {
	return m.Amount.GreaterThan(other.Amount)
}

// Sub returns m - other in m's currency
func (m Money) Sub(other Money) Money {
	return NewMoney(m.Amount.Sub(other.Amount), m.CurrencyCode)
}

// Mul returns m multiplied by an integer quantity
func (m Money) Mul(quantity int) Money {
	return NewMoney(m.Amount.Mul(decimal.NewFromInt(int64(quantity))), m.CurrencyCode)
}

// Add returns m + other in m's currency
func (m Money) Add(other Money) Money {
	return NewMoney(m.Amount.Add(other.Amount), m.CurrencyCode)
}

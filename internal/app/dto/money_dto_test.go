package dto

import (
	"testing"

	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func usd(amount string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(amount), "USD")
}

func TestDiscountPercent(t *testing.T) {
	tests := []struct {
		name             string
		price, compareAt string
		want             int
	}{
		{"TwentyOff", "80", "100", 20},
		{"Equal", "100", "100", 0},
		{"PriceAboveCompareAt", "100", "80", 0},
		{"Rounded", "899", "1299", 31},
		{"ZeroCompareAt", "10", "0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiscountPercent(decimal.RequireFromString(tt.price), decimal.RequireFromString(tt.compareAt))
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
		})
	}
}

func TestToMoneyView(t *testing.T) {
	v := ToMoneyView(domain.NewMoney(decimal.RequireFromString("1234.5"), "EUR"))
	assert.Equal(t, "1234.50", v.Amount)
	assert.Equal(t, "EUR", v.CurrencyCode)
	assert.Equal(t, "EUR 1,234.50", v.Formatted)

	assert.Equal(t, "899.00", ToMoneyView(usd("899")).Amount)
	assert.Equal(t, "0.10", ToMoneyView(usd("0.1")).Amount)
}

func TestToMoneyViewLargeAmounts(t *testing.T) {
	assert.Equal(t, "USD 12,345,678,901,234,567.89", ToMoneyView(usd("12345678901234567.89")).Formatted)
	assert.Equal(t, "USD 123456789012345678901.25", ToMoneyView(usd("123456789012345678901.25")).Formatted)
	assert.Equal(t, "USD 0.10", ToMoneyView(usd("0.1")).Formatted)
}

func TestSavingsAndInstallment(t *testing.T) {
	compareAt := usd("1299")
	assert.Equal(t, "400.00", ToMoneyView(Savings(usd("899"), &compareAt)).Amount)

	lower := usd("500")
	assert.True(t, Savings(usd("899"), &lower).IsZero())
	assert.True(t, Savings(usd("899"), nil).IsZero())

	assert.Equal(t, "224.75", ToMoneyView(Installment(usd("899"))).Amount)
	assert.Equal(t, "USD", Installment(usd("899")).CurrencyCode)
}

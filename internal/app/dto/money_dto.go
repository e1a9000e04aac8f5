package dto

import (
	"strconv"
	"strings"

	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// InstallmentCount is the number of interest-free payments offered on product pages
const InstallmentCount = 4

var printer = message.NewPrinter(language.AmericanEnglish)

// MoneyView represents a display-ready amount
type MoneyView struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
	Formatted    string `json:"formatted"`
}

// ToMoneyView renders an amount with two decimals. No currency conversion happens.
func ToMoneyView(m domain.Money) MoneyView {
	return MoneyView{
		Amount:       m.Amount.StringFixed(2),
		CurrencyCode: m.CurrencyCode,
		Formatted:    m.CurrencyCode + " " + formatAmount(m.Amount),
	}
}

// formatAmount groups the whole part and keeps the exact cents of StringFixed(2).
// Whole parts beyond int64 are left ungrouped.
func formatAmount(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	sign := ""
	if d.Round(2).IsNegative() {
		sign = "-"
	}

	whole, cents, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + fixed
	}
	return sign + printer.Sprint(number.Decimal(n)) + "." + cents
}

func toMoneyViewPtr(m *domain.Money) *MoneyView {
	if m == nil {
		return nil
	}
	v := ToMoneyView(*m)
	return &v
}

// DiscountPercent returns round(100 * (compareAt - price) / compareAt), or 0 unless compareAt > price
func DiscountPercent(price, compareAt decimal.Decimal) int {
	if !compareAt.GreaterThan(price) {
		return 0
	}
	return int(compareAt.Sub(price).Mul(decimal.NewFromInt(100)).Div(compareAt).Round(0).IntPart())
}

// Savings returns compareAt - price, floored at zero
func Savings(price domain.Money, compareAt *domain.Money) domain.Money {
	if compareAt == nil || !compareAt.GreaterThan(price) {
		return domain.NewMoney(decimal.Zero, price.CurrencyCode)
	}
	return compareAt.Sub(price)
}

// Installment splits a price into InstallmentCount equal payments
func Installment(price domain.Money) domain.Money {
	return domain.NewMoney(
		price.Amount.Div(decimal.NewFromInt(InstallmentCount)).Round(2),
		price.CurrencyCode,
	)
}

// effectiveCompareAt drops compare-at prices that do not exceed the price
func effectiveCompareAt(price domain.Money, compareAt *domain.Money) *domain.Money {
	if compareAt == nil || !compareAt.GreaterThan(price) {
		return nil
	}
	return compareAt
}

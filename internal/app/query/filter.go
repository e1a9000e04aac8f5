package query

import (
	"math"
	"net/url"
	"strings"

	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Recognized filter parameters
const (
	ParamPriceMin  = "priceMin"
	ParamPriceMax  = "priceMax"
	ParamType      = "type"
	ParamVendor    = "vendor"
	ParamAvailable = "available"
)

// FilterDescriptor is the compiled filter state of a listing request.
// The zero value is unconstrained.
type FilterDescriptor struct {
	PriceMin    *decimal.Decimal
	PriceMax    *decimal.Decimal
	ProductType string
	Vendor      string
	Available   bool
}

// CompileFilters translates raw query parameters into a FilterDescriptor.
// Malformed, negative or unrepresentable prices are treated as absent; only available=true constrains availability.
func CompileFilters(params url.Values) FilterDescriptor {
	var f FilterDescriptor

	f.PriceMin = parsePrice(params.Get(ParamPriceMin))
	f.PriceMax = parsePrice(params.Get(ParamPriceMax))
	f.ProductType = params.Get(ParamType)
	f.Vendor = params.Get(ParamVendor)
	f.Available = params.Get(ParamAvailable) == "true"

	return f
}

func parsePrice(raw string) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil
	}
	// the upstream filter takes a float; bounds it cannot represent are dropped
	if f := d.InexactFloat64(); math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &d
}

// IsUnconstrained reports whether no filter applies
func (f FilterDescriptor) IsUnconstrained() bool {
	return f.PriceMin == nil && f.PriceMax == nil &&
		f.ProductType == "" && f.Vendor == "" && !f.Available
}

// Values serializes the descriptor back into query parameters.
// An unconstrained descriptor yields no parameters.
func (f FilterDescriptor) Values() url.Values {
	v := url.Values{}
	if f.PriceMin != nil {
		v.Set(ParamPriceMin, f.PriceMin.String())
	}
	if f.PriceMax != nil {
		v.Set(ParamPriceMax, f.PriceMax.String())
	}
	if f.ProductType != "" {
		v.Set(ParamType, f.ProductType)
	}
	if f.Vendor != "" {
		v.Set(ParamVendor, f.Vendor)
	}
	if f.Available {
		v.Set(ParamAvailable, "true")
	}
	return v
}

// ProductFilters builds the upstream filter list, or nil when unconstrained
// so the variable is left out of the request entirely.
func (f FilterDescriptor) ProductFilters() []domain.ProductFilter {
	if f.IsUnconstrained() {
		return nil
	}

	var filters []domain.ProductFilter

	if f.PriceMin != nil || f.PriceMax != nil {
		price := &domain.PriceRangeFilter{}
		if f.PriceMin != nil {
			lo := f.PriceMin.InexactFloat64()
			price.Min = &lo
		}
		if f.PriceMax != nil {
			hi := f.PriceMax.InexactFloat64()
			price.Max = &hi
		}
		filters = append(filters, domain.ProductFilter{Price: price})
	}

	if f.ProductType != "" {
		filters = append(filters, domain.ProductFilter{ProductType: f.ProductType})
	}

	if f.Vendor != "" {
		filters = append(filters, domain.ProductFilter{ProductVendor: f.Vendor})
	}

	if f.Available {
		available := true
		filters = append(filters, domain.ProductFilter{Available: &available})
	}

	return filters
}

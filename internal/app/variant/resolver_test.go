package variant

import (
	"net/url"
	"testing"

	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVariant(id, color, strap string, available bool) domain.Variant {
	return domain.Variant{
		ID:               id,
		Title:            color + " / " + strap,
		AvailableForSale: available,
		SelectedOptions: []domain.SelectedOption{
			{Name: "Color", Value: color},
			{Name: "Strap", Value: strap},
		},
		Price: domain.NewMoney(decimal.NewFromInt(899), "USD"),
	}
}

func testProduct() *domain.Product {
	return &domain.Product{
		ID:     "gid://shopify/Product/1",
		Handle: "adrenaline",
		Title:  "ADRENALINE",
		Options: []domain.ProductOption{
			{Name: "Color", Values: []string{"Silver", "Gold", "Rose Gold"}},
			{Name: "Strap", Values: []string{"Leather", "Steel"}},
		},
		Variants: []domain.Variant{
			newVariant("v1", "Silver", "Leather", true),
			newVariant("v2", "Silver", "Steel", true),
			newVariant("v3", "Gold", "Steel", true),
			newVariant("v4", "Rose Gold", "Leather", false),
		},
		FirstAvailableVariantID: "v1",
	}
}

func valueByName(t *testing.T, opt Option, value string) OptionValue {
	t.Helper()
	for _, v := range opt.Values {
		if v.Value == value {
			return v
		}
	}
	t.Fatalf("option %s has no value %s", opt.Name, value)
	return OptionValue{}
}

func TestResolve(t *testing.T) {
	t.Run("NoSelectionUsesFirstAvailable", func(t *testing.T) {
		res := Resolve(testProduct(), nil)
		require.NotNil(t, res.Variant)
		assert.Equal(t, "v1", res.Variant.ID)
		assert.True(t, res.ExactMatch)
		assert.Equal(t, map[string]string{"Color": "Silver", "Strap": "Leather"}, res.Requested)
	})

	t.Run("PartialSelectionDefaultsOtherAxes", func(t *testing.T) {
		res := Resolve(testProduct(), map[string]string{"Strap": "Steel"})
		require.NotNil(t, res.Variant)
		assert.Equal(t, "v2", res.Variant.ID)
		assert.True(t, res.ExactMatch)
	})

	t.Run("FullSelection", func(t *testing.T) {
		res := Resolve(testProduct(), map[string]string{"Color": "Gold", "Strap": "Steel"})
		assert.Equal(t, "v3", res.Variant.ID)
		assert.True(t, res.ExactMatch)
	})

	t.Run("CaseInsensitiveNamesAndValues", func(t *testing.T) {
		res := Resolve(testProduct(), map[string]string{"color": "rose gold"})
		assert.Equal(t, "v4", res.Variant.ID)
		assert.True(t, res.ExactMatch)
		assert.Equal(t, "Rose Gold", res.Requested["Color"])
	})

	t.Run("InvalidCombinationFallsBack", func(t *testing.T) {
		res := Resolve(testProduct(), map[string]string{"color": "Gold"})
		require.NotNil(t, res.Variant)
		assert.Equal(t, "v1", res.Variant.ID)
		assert.False(t, res.ExactMatch)
		assert.Equal(t, map[string]string{"Color": "Gold", "Strap": "Leather"}, res.Requested)
	})

	t.Run("UnknownValueFallsBack", func(t *testing.T) {
		res := Resolve(testProduct(), map[string]string{"Color": "Titanium"})
		assert.Equal(t, "v1", res.Variant.ID)
		assert.False(t, res.ExactMatch)
	})

	t.Run("NavigableOptions", func(t *testing.T) {
		res := Resolve(testProduct(), nil)
		require.Len(t, res.Options, 2)

		color := res.Options[0]
		assert.Equal(t, "Color", color.Name)
		assert.Equal(t, "Silver", color.SelectedValue)

		silver := valueByName(t, color, "Silver")
		assert.True(t, silver.IsActive)
		assert.True(t, silver.Exists)
		assert.True(t, silver.IsAvailable)

		gold := valueByName(t, color, "Gold")
		assert.False(t, gold.IsActive)
		assert.False(t, gold.Exists)
		assert.False(t, gold.IsAvailable)
		assert.Equal(t, url.Values{"Color": {"Gold"}, "Strap": {"Leather"}}, gold.Query)
		assert.Equal(t, "/products/adrenaline?Color=Gold&Strap=Leather", gold.To)

		rose := valueByName(t, color, "Rose Gold")
		assert.True(t, rose.Exists)
		assert.False(t, rose.IsAvailable)

		steel := valueByName(t, res.Options[1], "Steel")
		assert.True(t, steel.Exists)
		assert.True(t, steel.IsAvailable)
		assert.False(t, steel.IsActive)
		assert.Equal(t, "/products/adrenaline?Color=Silver&Strap=Steel", steel.To)
	})

	t.Run("Idempotent", func(t *testing.T) {
		p := testProduct()
		sel := map[string]string{"Color": "Gold"}
		first := Resolve(p, sel)
		second := Resolve(p, sel)
		assert.Equal(t, first.Variant.ID, second.Variant.ID)
		assert.Equal(t, first.ExactMatch, second.ExactMatch)
		assert.Equal(t, first.Options, second.Options)
	})

	t.Run("NoVariants", func(t *testing.T) {
		p := &domain.Product{Handle: "empty"}
		res := Resolve(p, map[string]string{"Color": "Gold"})
		assert.Nil(t, res.Variant)
		assert.False(t, res.ExactMatch)
		assert.Empty(t, res.Options)
	})

	t.Run("FirstAvailableComputedWhenNotDesignated", func(t *testing.T) {
		p := testProduct()
		p.FirstAvailableVariantID = ""
		p.Variants[0].AvailableForSale = false
		res := Resolve(p, nil)
		assert.Equal(t, "v2", res.Variant.ID)
	})
}

func TestSelectionFromQuery(t *testing.T) {
	params := url.Values{
		"color":   {"Gold"},
		"STRAP":   {"Steel"},
		"sort":    {"PRICE"},
		"empty":   {""},
		"Unknown": {"x"},
	}
	got := SelectionFromQuery(testProduct(), params)
	assert.Equal(t, map[string]string{"Color": "Gold", "Strap": "Steel"}, got)
}

package query

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileFilters(t *testing.T) {
	t.Run("NoRecognizedKeys", func(t *testing.T) {
		for _, raw := range []string{"", "foo=bar", "sort=PRICE&order=desc", "color=Gold&page=2"} {
			params, err := url.ParseQuery(raw)
			require.NoError(t, err)

			f := CompileFilters(params)
			assert.True(t, f.IsUnconstrained(), raw)
			assert.Empty(t, f.Values(), raw)
			assert.Nil(t, f.ProductFilters(), raw)
		}
	})

	t.Run("PriceRange", func(t *testing.T) {
		f := CompileFilters(url.Values{"priceMin": {"500"}, "priceMax": {"1000.50"}})
		require.False(t, f.IsUnconstrained())

		filters := f.ProductFilters()
		require.Len(t, filters, 1)
		require.NotNil(t, filters[0].Price)
		require.NotNil(t, filters[0].Price.Min)
		require.NotNil(t, filters[0].Price.Max)
		assert.Equal(t, 500.0, *filters[0].Price.Min)
		assert.Equal(t, 1000.5, *filters[0].Price.Max)
	})

	t.Run("SingleBound", func(t *testing.T) {
		filters := CompileFilters(url.Values{"priceMax": {"250"}}).ProductFilters()
		require.Len(t, filters, 1)
		assert.Nil(t, filters[0].Price.Min)
		assert.Equal(t, 250.0, *filters[0].Price.Max)
	})

	t.Run("MalformedPricesOmitted", func(t *testing.T) {
		for _, v := range []string{"abc", "12..5", "-10", "NaN", "1,000", " "} {
			f := CompileFilters(url.Values{"priceMin": {v}, "priceMax": {v}})
			assert.Nil(t, f.PriceMin, v)
			assert.Nil(t, f.PriceMax, v)
			assert.True(t, f.IsUnconstrained(), v)
		}
	})

	t.Run("OutOfRangePricesOmitted", func(t *testing.T) {
		f := CompileFilters(url.Values{"priceMin": {"1e999"}, "priceMax": {"1000"}})
		assert.Nil(t, f.PriceMin)
		require.NotNil(t, f.PriceMax)

		filters := f.ProductFilters()
		require.Len(t, filters, 1)
		assert.Nil(t, filters[0].Price.Min)

		_, err := json.Marshal(filters)
		assert.NoError(t, err)

		assert.True(t, CompileFilters(url.Values{"priceMax": {"9e400"}}).IsUnconstrained())
	})

	t.Run("MalformedPriceKeepsOtherClauses", func(t *testing.T) {
		filters := CompileFilters(url.Values{"priceMin": {"cheap"}, "vendor": {"Vastara"}}).ProductFilters()
		require.Len(t, filters, 1)
		assert.Nil(t, filters[0].Price)
		assert.Equal(t, "Vastara", filters[0].ProductVendor)
	})

	t.Run("Availability", func(t *testing.T) {
		assert.False(t, CompileFilters(url.Values{"available": {"false"}}).Available)
		assert.False(t, CompileFilters(url.Values{"available": {""}}).Available)
		assert.False(t, CompileFilters(url.Values{"available": {"TRUE"}}).Available)
		assert.True(t, CompileFilters(url.Values{"available": {"false"}}).IsUnconstrained())

		f := CompileFilters(url.Values{"available": {"true"}})
		require.True(t, f.Available)
		filters := f.ProductFilters()
		require.Len(t, filters, 1)
		require.NotNil(t, filters[0].Available)
		assert.True(t, *filters[0].Available)
	})

	t.Run("TypeAndVendorVerbatim", func(t *testing.T) {
		f := CompileFilters(url.Values{"type": {"Dive Watch"}, "vendor": {"Vastara & Co"}})
		filters := f.ProductFilters()
		require.Len(t, filters, 2)
		assert.Equal(t, "Dive Watch", filters[0].ProductType)
		assert.Equal(t, "Vastara & Co", filters[1].ProductVendor)
	})

	t.Run("ValuesRoundTrip", func(t *testing.T) {
		in := url.Values{
			"priceMin":  {"500"},
			"priceMax":  {"1000"},
			"type":      {"Automatic"},
			"vendor":    {"Vastara"},
			"available": {"true"},
		}
		assert.Equal(t, in, CompileFilters(in).Values())
	})
}

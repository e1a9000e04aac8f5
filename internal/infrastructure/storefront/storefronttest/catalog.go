package storefronttest

import (
	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/shopspring/decimal"
)

// USD builds a USD amount from a decimal string
func USD(amount string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(amount), "USD")
}

func listing(handle, title, vendor, productType, price string, available bool) domain.Product {
	return domain.Product{
		ID:               "gid://shopify/Product/" + handle,
		Handle:           handle,
		Title:            title,
		Vendor:           vendor,
		ProductType:      productType,
		AvailableForSale: available,
		Price:            USD(price),
		Images: []domain.Image{
			{URL: "https://cdn.example.com/" + handle + "-1.jpg"},
			{URL: "https://cdn.example.com/" + handle + "-2.jpg"},
		},
	}
}

// Adrenaline is a product with two option axes and one sold-out combination
func Adrenaline() domain.Product {
	silver := domain.SelectedOption{Name: "Color", Value: "Silver"}
	gold := domain.SelectedOption{Name: "Color", Value: "Gold"}
	rose := domain.SelectedOption{Name: "Color", Value: "Rose Gold"}
	leather := domain.SelectedOption{Name: "Strap", Value: "Leather"}
	steel := domain.SelectedOption{Name: "Strap", Value: "Steel"}
	compareAt := USD("1299")

	p := listing("adrenaline", "ADRENALINE", "Vastara", "Dive", "899", true)
	p.DescriptionHTML = "<p>Built on 300m water-resistant design.</p>"
	p.CompareAtPrice = &compareAt
	p.Options = []domain.ProductOption{
		{Name: "Color", Values: []string{"Silver", "Gold", "Rose Gold"}},
		{Name: "Strap", Values: []string{"Leather", "Steel"}},
	}
	p.Variants = []domain.Variant{
		{ID: "v1", Title: "Silver / Leather", AvailableForSale: true, SelectedOptions: []domain.SelectedOption{silver, leather}, Price: USD("899"), CompareAtPrice: &compareAt},
		{ID: "v2", Title: "Silver / Steel", AvailableForSale: true, SelectedOptions: []domain.SelectedOption{silver, steel}, Price: USD("929")},
		{ID: "v3", Title: "Gold / Steel", AvailableForSale: true, SelectedOptions: []domain.SelectedOption{gold, steel}, Price: USD("949")},
		{ID: "v4", Title: "Rose Gold / Leather", AvailableForSale: false, SelectedOptions: []domain.SelectedOption{rose, leather}, Price: USD("929")},
	}
	p.FirstAvailableVariantID = "v1"
	p.Metafields = []domain.Metafield{
		{Namespace: "custom", Key: "specifications", Value: `{"Movement":"Swiss automatic","Water resistance":"300m"}`},
		{Namespace: "custom", Key: "features", Value: `["Sapphire crystal","Screw-down crown"]`},
	}
	return p
}

// Catalog returns a fake with a "watches" collection of six products
func Catalog() *Fake {
	f := NewFake()
	f.AddCollection(domain.Collection{
		ID:          "gid://shopify/Collection/watches",
		Handle:      "watches",
		Title:       "Watches",
		Description: "Every Vastara timepiece.",
		Products: []domain.Product{
			Adrenaline(),
			listing("terra-nova", "TERRA NOVA", "Vastara", "Field", "599", true),
			listing("abyss", "ABYSS", "Vastara", "Dive", "1200", true),
			listing("meridian", "MERIDIAN", "Horologe", "Dress", "450", true),
			listing("aurora", "AURORA", "Horologe", "Dress", "1000", false),
			listing("zenith", "ZENITH", "Vastara", "Chronograph", "1500", true),
		},
	})
	f.RecommendationsByHandle["adrenaline"] = []domain.Product{
		listing("abyss", "ABYSS", "Vastara", "Dive", "1200", true),
		Adrenaline(),
	}
	return f
}

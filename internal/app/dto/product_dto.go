package dto

import (
	"net/url"

	"github.com/mrops-br/storefront-api/internal/app/variant"
	"github.com/mrops-br/storefront-api/internal/domain"
)

// ProductCard represents a product in listings
type ProductCard struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Handle          string     `json:"handle"`
	Vendor          string     `json:"vendor,omitempty"`
	ProductType     string     `json:"productType,omitempty"`
	Available       bool       `json:"available"`
	URL             string     `json:"url"`
	Price           MoneyView  `json:"price"`
	CompareAtPrice  *MoneyView `json:"compareAtPrice,omitempty"`
	DiscountPercent int        `json:"discountPercent"`
	PrimaryImage    *ImageView `json:"primaryImage,omitempty"`
	SecondaryImage  *ImageView `json:"secondaryImage,omitempty"`
}

// VariantView represents the displayed variant of a product page
type VariantView struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Available       bool              `json:"available"`
	SelectedOptions map[string]string `json:"selectedOptions"`
	Price           MoneyView         `json:"price"`
	CompareAtPrice  *MoneyView        `json:"compareAtPrice,omitempty"`
	DiscountPercent int               `json:"discountPercent"`
	Savings         MoneyView         `json:"savings"`
	Installment     MoneyView         `json:"installment"`
	Image           *ImageView        `json:"image,omitempty"`
}

// OptionValueView is one entry of an option selector
type OptionValueView struct {
	Value       string `json:"value"`
	IsActive    bool   `json:"isActive"`
	Exists      bool   `json:"exists"`
	IsAvailable bool   `json:"isAvailable"`
	Query       string `json:"query"`
	To          string `json:"to"`
}

// OptionView is an option selector
type OptionView struct {
	Name          string            `json:"name"`
	SelectedValue string            `json:"selectedValue"`
	Values        []OptionValueView `json:"values"`
}

// MetafieldView exposes a decoded metafield with its state
type MetafieldView[T any] struct {
	State domain.MetafieldState `json:"state"`
	Value T                     `json:"value,omitempty"`
	Raw   string                `json:"raw,omitempty"`
}

// ProductDetail represents the product page view model
type ProductDetail struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Handle          string      `json:"handle"`
	Vendor          string      `json:"vendor,omitempty"`
	ProductType     string      `json:"productType,omitempty"`
	Description     string      `json:"description"`
	DescriptionHTML string      `json:"descriptionHtml,omitempty"`
	Available       bool        `json:"available"`
	URL             string      `json:"url"`
	PrimaryImage    *ImageView  `json:"primaryImage,omitempty"`
	SecondaryImage  *ImageView  `json:"secondaryImage,omitempty"`
	Images          []ImageView `json:"images"`

	SelectedVariant *VariantView `json:"selectedVariant,omitempty"`
	// ExactMatch is false when the requested option combination is not purchasable
	// and SelectedVariant is a fallback
	ExactMatch       bool              `json:"exactMatch"`
	RequestedOptions map[string]string `json:"requestedOptions"`
	Options          []OptionView      `json:"options"`

	Specifications MetafieldView[map[string]string] `json:"specifications"`
	Features       MetafieldView[[]string]          `json:"features"`

	Recommendations []ProductCard `json:"recommendations"`
	SEO             SEOView       `json:"seo"`
}

// ProductURL is the storefront path of a product
func ProductURL(handle string) string {
	return "/products/" + url.PathEscape(handle)
}

// ToProductCard converts a domain product into a listing card
func ToProductCard(p *domain.Product) ProductCard {
	compareAt := effectiveCompareAt(p.Price, p.CompareAtPrice)
	card := ProductCard{
		ID:             p.ID,
		Title:          p.Title,
		Handle:         p.Handle,
		Vendor:         p.Vendor,
		ProductType:    p.ProductType,
		Available:      p.AvailableForSale,
		URL:            ProductURL(p.Handle),
		Price:          ToMoneyView(p.Price),
		CompareAtPrice: toMoneyViewPtr(compareAt),
		PrimaryImage:   PrimaryImage(p.Images, p.FeaturedImage),
		SecondaryImage: SecondaryImage(p.Images),
	}
	if compareAt != nil {
		card.DiscountPercent = DiscountPercent(p.Price.Amount, compareAt.Amount)
	}
	return card
}

// ToProductCards converts a list of domain products into cards
func ToProductCards(products []domain.Product) []ProductCard {
	cards := make([]ProductCard, len(products))
	for i := range products {
		cards[i] = ToProductCard(&products[i])
	}
	return cards
}

// ToVariantView converts the displayed variant
func ToVariantView(v *domain.Variant) *VariantView {
	if v == nil {
		return nil
	}

	selected := make(map[string]string, len(v.SelectedOptions))
	for _, o := range v.SelectedOptions {
		selected[o.Name] = o.Value
	}

	compareAt := effectiveCompareAt(v.Price, v.CompareAtPrice)
	view := &VariantView{
		ID:              v.ID,
		Title:           v.Title,
		Available:       v.AvailableForSale,
		SelectedOptions: selected,
		Price:           ToMoneyView(v.Price),
		CompareAtPrice:  toMoneyViewPtr(compareAt),
		Savings:         ToMoneyView(Savings(v.Price, compareAt)),
		Installment:     ToMoneyView(Installment(v.Price)),
		Image:           ToImageView(v.Image),
	}
	if compareAt != nil {
		view.DiscountPercent = DiscountPercent(v.Price.Amount, compareAt.Amount)
	}
	return view
}

// ToOptionViews converts the navigable option state
func ToOptionViews(options []variant.Option) []OptionView {
	views := make([]OptionView, 0, len(options))
	for _, o := range options {
		ov := OptionView{
			Name:          o.Name,
			SelectedValue: o.SelectedValue,
			Values:        make([]OptionValueView, 0, len(o.Values)),
		}
		for _, v := range o.Values {
			ov.Values = append(ov.Values, OptionValueView{
				Value:       v.Value,
				IsActive:    v.IsActive,
				Exists:      v.Exists,
				IsAvailable: v.IsAvailable,
				Query:       v.Query.Encode(),
				To:          v.To,
			})
		}
		views = append(views, ov)
	}
	return views
}

func toMetafieldView[T any](r domain.MetafieldResult[T]) MetafieldView[T] {
	return MetafieldView[T]{State: r.State, Value: r.Value, Raw: r.Raw}
}

// ToProductDetail assembles the product page from a product, its variant resolution and recommendations
func ToProductDetail(p *domain.Product, res variant.Resolution, recommendations []domain.Product, storeURL string) *ProductDetail {
	path := ProductURL(p.Handle)
	detail := &ProductDetail{
		ID:               p.ID,
		Title:            p.Title,
		Handle:           p.Handle,
		Vendor:           p.Vendor,
		ProductType:      p.ProductType,
		Description:      p.Description,
		DescriptionHTML:  p.DescriptionHTML,
		Available:        p.AvailableForSale,
		URL:              path,
		PrimaryImage:     PrimaryImage(p.Images, p.FeaturedImage),
		SecondaryImage:   SecondaryImage(p.Images),
		Images:           toImageViews(p.Images),
		SelectedVariant:  ToVariantView(res.Variant),
		ExactMatch:       res.ExactMatch,
		RequestedOptions: res.Requested,
		Options:          ToOptionViews(res.Options),
		Specifications:   toMetafieldView(domain.DecodeMetafield[map[string]string](p.Metafield("specifications"))),
		Features:         toMetafieldView(domain.DecodeMetafield[[]string](p.Metafield("features"))),
		Recommendations:  ToProductCards(recommendations),
	}
	if detail.Description == "" {
		detail.Description = PlainText(p.DescriptionHTML)
	}

	title := p.SEO.Title
	if title == "" {
		title = p.Title
	}
	detail.SEO = SEOView{
		Title:       title,
		Description: metaDescription(p.SEO.Description, p.Description, p.DescriptionHTML),
		Canonical:   canonicalURL(storeURL, path),
	}

	image := detail.PrimaryImage
	if detail.SelectedVariant != nil && detail.SelectedVariant.Image != nil {
		image = detail.SelectedVariant.Image
	}
	if image != nil {
		detail.SEO.Image = image.URL
	}

	detail.SEO.JSONLD = productJSONLD(p, detail)
	return detail
}

func productJSONLD(p *domain.Product, d *ProductDetail) map[string]any {
	ld := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Product",
		"name":        p.Title,
		"description": d.SEO.Description,
		"url":         d.SEO.Canonical,
	}
	if d.SEO.Image != "" {
		ld["image"] = d.SEO.Image
	}
	if p.Vendor != "" {
		ld["brand"] = map[string]any{"@type": "Brand", "name": p.Vendor}
	}
	if d.SelectedVariant != nil {
		availability := "https://schema.org/OutOfStock"
		if d.SelectedVariant.Available {
			availability = "https://schema.org/InStock"
		}
		ld["offers"] = map[string]any{
			"@type":         "Offer",
			"price":         d.SelectedVariant.Price.Amount,
			"priceCurrency": d.SelectedVariant.Price.CurrencyCode,
			"availability":  availability,
			"url":           d.SEO.Canonical,
		}
	}
	return ld
}

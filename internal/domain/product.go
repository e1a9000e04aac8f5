package domain

import "strings"

// Image represents a product or collection image
type Image struct {
	ID      string
	URL     string
	AltText string
	Width   int
	Height  int
}

// SEO holds the search-engine overrides configured upstream
type SEO struct {
	Title       string
	Description string
}

// SelectedOption is one option axis value carried by a variant
type SelectedOption struct {
	Name  string
	Value string
}

// ProductOption is a named configuration axis with its ordered values
type ProductOption struct {
	Name   string
	Values []string
}

// Variant is a purchasable configuration of a product
type Variant struct {
	ID               string
	Title            string
	AvailableForSale bool
	SelectedOptions  []SelectedOption
	Price            Money
	CompareAtPrice   *Money
	Image            *Image
}

// OptionValue returns the variant's value for the named option axis
func (v *Variant) OptionValue(name string) (string, bool) {
	for _, o := range v.SelectedOptions {
		if strings.EqualFold(o.Name, name) {
			return o.Value, true
		}
	}
	return "", false
}

// Metafield is a raw custom field attached to a product
type Metafield struct {
	Namespace string
	Key       string
	Value     string
}

// Product represents the product entity
type Product struct {
	ID               string
	Title            string
	Handle           string
	Vendor           string
	ProductType      string
	Description      string
	DescriptionHTML  string
	AvailableForSale bool
	SEO              SEO

	Images        []Image
	FeaturedImage *Image

	Options  []ProductOption
	Variants []Variant

	// Min variant prices; CompareAtPrice is nil when no variant has one
	Price          Money
	CompareAtPrice *Money

	// FirstAvailableVariantID is provided upstream and may be empty
	FirstAvailableVariantID string

	Metafields []Metafield
}

// FirstAvailableVariant returns the upstream-designated first available variant.
// Without that designation the first variant for sale is used, then the first variant.
func (p *Product) FirstAvailableVariant() *Variant {
	if p.FirstAvailableVariantID != "" {
		if v := p.VariantByID(p.FirstAvailableVariantID); v != nil {
			return v
		}
	}
	for i := range p.Variants {
		if p.Variants[i].AvailableForSale {
			return &p.Variants[i]
		}
	}
	if len(p.Variants) > 0 {
		return &p.Variants[0]
	}
	return nil
}

// VariantByID finds a variant by its identifier
func (p *Product) VariantByID(id string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

// Metafield finds a metafield by key
func (p *Product) Metafield(key string) *Metafield {
	for i := range p.Metafields {
		if p.Metafields[i].Key == key {
			return &p.Metafields[i]
		}
	}
	return nil
}

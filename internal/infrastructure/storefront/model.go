package storefront

import (
	"fmt"

	"github.com/mrops-br/storefront-api/internal/domain"
)

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse[T any] struct {
	Data   T              `json:"data"`
	Errors []graphQLError `json:"errors,omitempty"`
}

type moneyV2 struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type priceRange struct {
	MinVariantPrice *moneyV2 `json:"minVariantPrice"`
}

type image struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

type seo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type variant struct {
	ID               string                  `json:"id"`
	Title            string                  `json:"title"`
	AvailableForSale bool                    `json:"availableForSale"`
	SelectedOptions  []domain.SelectedOption `json:"selectedOptions"`
	Price            moneyV2                 `json:"price"`
	CompareAtPrice   *moneyV2                `json:"compareAtPrice"`
	Image            *image                  `json:"image"`
}

type metafield struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}

type product struct {
	ID                  string      `json:"id"`
	Title               string      `json:"title"`
	Handle              string      `json:"handle"`
	Vendor              string      `json:"vendor"`
	ProductType         string      `json:"productType"`
	Description         string      `json:"description"`
	DescriptionHTML     string      `json:"descriptionHtml"`
	AvailableForSale    bool        `json:"availableForSale"`
	SEO                 seo         `json:"seo"`
	PriceRange          priceRange  `json:"priceRange"`
	CompareAtPriceRange *priceRange `json:"compareAtPriceRange"`
	Images              struct {
		Nodes []image `json:"nodes"`
	} `json:"images"`
	FeaturedImage  *image `json:"featuredImage"`
	Options        []struct {
		Name   string   `json:"name"`
		Values []string `json:"values"`
	} `json:"options"`
	FirstAvailable *struct {
		ID string `json:"id"`
	} `json:"firstAvailable"`
	Variants struct {
		Nodes []variant `json:"nodes"`
	} `json:"variants"`
	// null entries stand for identifiers with no value
	Metafields []*metafield `json:"metafields"`
}

type pageInfo struct {
	HasPreviousPage bool   `json:"hasPreviousPage"`
	HasNextPage     bool   `json:"hasNextPage"`
	StartCursor     string `json:"startCursor"`
	EndCursor       string `json:"endCursor"`
}

type collection struct {
	ID          string `json:"id"`
	Handle      string `json:"handle"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SEO         seo    `json:"seo"`
	Image       *image `json:"image"`
	Products    struct {
		Nodes    []product `json:"nodes"`
		PageInfo pageInfo  `json:"pageInfo"`
	} `json:"products"`
}

type collectionData struct {
	Collection *collection `json:"collection"`
}

type productData struct {
	Product *product `json:"product"`
}

type recommendationsData struct {
	ProductRecommendations []product `json:"productRecommendations"`
}

type featuredCollectionsData struct {
	Collections struct {
		Nodes []collection `json:"nodes"`
	} `json:"collections"`
}

type featuredProductsData struct {
	Products struct {
		Nodes []product `json:"nodes"`
	} `json:"products"`
}

// toMoney maps an upstream amount; unparseable amounts wrap domain.ErrUpstreamUnavailable
func toMoney(m *moneyV2) (*domain.Money, error) {
	if m == nil || m.Amount == "" {
		return nil, nil
	}
	money, err := domain.ParseMoney(m.Amount, m.CurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	return &money, nil
}

func toImage(i *image) *domain.Image {
	if i == nil || i.URL == "" {
		return nil
	}
	return &domain.Image{ID: i.ID, URL: i.URL, AltText: i.AltText, Width: i.Width, Height: i.Height}
}

func toVariant(v variant) (domain.Variant, error) {
	price, err := toMoney(&v.Price)
	if err != nil {
		return domain.Variant{}, fmt.Errorf("variant %s price: %w", v.ID, err)
	}
	compareAt, err := toMoney(v.CompareAtPrice)
	if err != nil {
		return domain.Variant{}, fmt.Errorf("variant %s compare-at price: %w", v.ID, err)
	}

	out := domain.Variant{
		ID:               v.ID,
		Title:            v.Title,
		AvailableForSale: v.AvailableForSale,
		SelectedOptions:  v.SelectedOptions,
		CompareAtPrice:   compareAt,
		Image:            toImage(v.Image),
	}
	if price != nil {
		out.Price = *price
	}
	return out, nil
}

func toProduct(p *product) (domain.Product, error) {
	out := domain.Product{
		ID:               p.ID,
		Title:            p.Title,
		Handle:           p.Handle,
		Vendor:           p.Vendor,
		ProductType:      p.ProductType,
		Description:      p.Description,
		DescriptionHTML:  p.DescriptionHTML,
		AvailableForSale: p.AvailableForSale,
		SEO:              domain.SEO{Title: p.SEO.Title, Description: p.SEO.Description},
		FeaturedImage:    toImage(p.FeaturedImage),
	}

	price, err := toMoney(p.PriceRange.MinVariantPrice)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %s price: %w", p.Handle, err)
	}
	if price != nil {
		out.Price = *price
	}
	if p.CompareAtPriceRange != nil {
		compareAt, err := toMoney(p.CompareAtPriceRange.MinVariantPrice)
		if err != nil {
			return domain.Product{}, fmt.Errorf("product %s compare-at price: %w", p.Handle, err)
		}
		// an unset compare-at range is reported as 0.0
		if compareAt != nil && !compareAt.IsZero() {
			out.CompareAtPrice = compareAt
		}
	}

	for i := range p.Images.Nodes {
		if img := toImage(&p.Images.Nodes[i]); img != nil {
			out.Images = append(out.Images, *img)
		}
	}
	for _, o := range p.Options {
		out.Options = append(out.Options, domain.ProductOption{Name: o.Name, Values: o.Values})
	}
	for _, v := range p.Variants.Nodes {
		dv, err := toVariant(v)
		if err != nil {
			return domain.Product{}, fmt.Errorf("product %s: %w", p.Handle, err)
		}
		out.Variants = append(out.Variants, dv)
	}
	if p.FirstAvailable != nil {
		out.FirstAvailableVariantID = p.FirstAvailable.ID
	}
	for _, m := range p.Metafields {
		if m == nil {
			continue
		}
		out.Metafields = append(out.Metafields, domain.Metafield{Namespace: m.Namespace, Key: m.Key, Value: m.Value})
	}

	return out, nil
}

func toProducts(nodes []product) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(nodes))
	for i := range nodes {
		p, err := toProduct(&nodes[i])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func toCollection(c *collection) (*domain.Collection, error) {
	products, err := toProducts(c.Products.Nodes)
	if err != nil {
		return nil, fmt.Errorf("collection %s: %w", c.Handle, err)
	}
	return &domain.Collection{
		ID:          c.ID,
		Handle:      c.Handle,
		Title:       c.Title,
		Description: c.Description,
		Image:       toImage(c.Image),
		SEO:         domain.SEO{Title: c.SEO.Title, Description: c.SEO.Description},
		Products:    products,
		PageInfo: domain.PageInfo{
			HasPreviousPage: c.Products.PageInfo.HasPreviousPage,
			HasNextPage:     c.Products.PageInfo.HasNextPage,
			StartCursor:     c.Products.PageInfo.StartCursor,
			EndCursor:       c.Products.PageInfo.EndCursor,
		},
	}, nil
}

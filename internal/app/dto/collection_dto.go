package dto

import (
	"net/url"

	"github.com/mrops-br/storefront-api/internal/app/query"
	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/shopspring/decimal"
)

// FacetScopeCurrentPage marks facets derived from the loaded page only, not the whole collection
const FacetScopeCurrentPage = "current_page"

// PageInfoView carries scope-bound cursors and navigation targets
type PageInfoView struct {
	HasPreviousPage bool   `json:"hasPreviousPage"`
	HasNextPage     bool   `json:"hasNextPage"`
	StartCursor     string `json:"startCursor,omitempty"`
	EndCursor       string `json:"endCursor,omitempty"`
	PreviousURL     string `json:"previousUrl,omitempty"`
	NextURL         string `json:"nextUrl,omitempty"`
}

// AppliedFilters echoes the compiled request state
type AppliedFilters struct {
	Sort      string `json:"sort"`
	Order     string `json:"order,omitempty"`
	PriceMin  string `json:"priceMin,omitempty"`
	PriceMax  string `json:"priceMax,omitempty"`
	Type      string `json:"type,omitempty"`
	Vendor    string `json:"vendor,omitempty"`
	Available bool   `json:"available"`
	// Query is the encoded filter and sort state, without cursors
	Query string `json:"query"`
}

// PriceRangeView is the floor/ceil price span of the loaded products
type PriceRangeView struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Facets lists filter choices found on the loaded page
type Facets struct {
	Scope        string          `json:"scope"`
	Vendors      []string        `json:"vendors"`
	ProductTypes []string        `json:"productTypes"`
	PriceRange   *PriceRangeView `json:"priceRange,omitempty"`
}

// CollectionView represents the collection page view model
type CollectionView struct {
	ID             string             `json:"id"`
	Handle         string             `json:"handle"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Image          *ImageView         `json:"image,omitempty"`
	URL            string             `json:"url"`
	Products       []ProductCard      `json:"products"`
	ProductCount   int                `json:"productCount"`
	PageInfo       PageInfoView       `json:"pageInfo"`
	AppliedFilters AppliedFilters     `json:"appliedFilters"`
	SortOptions    []query.SortOption `json:"sortOptions"`
	Facets         Facets             `json:"facets"`
	SEO            SEOView            `json:"seo"`
}

// CollectionState is the compiled request state a collection page was loaded with
type CollectionState struct {
	Filters  query.FilterDescriptor
	Sort     query.SortKey
	Scope    string
	StoreURL string
}

// CollectionURL is the storefront path of a collection
func CollectionURL(handle string) string {
	return "/collections/" + url.PathEscape(handle)
}

// StateValues merges filter and sort parameters. The default sort contributes nothing.
func (s CollectionState) StateValues() url.Values {
	v := s.Filters.Values()
	if s.Sort.Key != query.DefaultSortKey || s.Sort.Reverse {
		for k, vals := range s.Sort.State().Values() {
			v[k] = vals
		}
	}
	return v
}

// ToCollectionView assembles the collection page
func ToCollectionView(c *domain.Collection, state CollectionState) *CollectionView {
	path := CollectionURL(c.Handle)
	stateValues := state.StateValues()
	sortState := state.Sort.State()

	view := &CollectionView{
		ID:           c.ID,
		Handle:       c.Handle,
		Title:        c.Title,
		Description:  c.Description,
		Image:        ToImageView(c.Image),
		URL:          path,
		Products:     ToProductCards(c.Products),
		ProductCount: len(c.Products),
		PageInfo:     toPageInfoView(c.PageInfo, path, stateValues, state.Scope),
		AppliedFilters: AppliedFilters{
			Sort:      sortState.Sort,
			Order:     sortState.Order,
			Type:      state.Filters.ProductType,
			Vendor:    state.Filters.Vendor,
			Available: state.Filters.Available,
			Query:     stateValues.Encode(),
		},
		SortOptions: query.SortOptions(state.Sort),
		Facets:      ToFacets(c.Products),
	}
	if state.Filters.PriceMin != nil {
		view.AppliedFilters.PriceMin = state.Filters.PriceMin.String()
	}
	if state.Filters.PriceMax != nil {
		view.AppliedFilters.PriceMax = state.Filters.PriceMax.String()
	}

	title := c.SEO.Title
	if title == "" {
		title = c.Title
	}
	view.SEO = SEOView{
		Title:       title,
		Description: metaDescription(c.SEO.Description, c.Description, ""),
		Canonical:   canonicalURL(state.StoreURL, path),
	}
	if view.Image != nil {
		view.SEO.Image = view.Image.URL
	}
	view.SEO.JSONLD = map[string]any{
		"@context":      "https://schema.org",
		"@type":         "CollectionPage",
		"name":          c.Title,
		"description":   c.Description,
		"url":           view.SEO.Canonical,
		"numberOfItems": view.ProductCount,
	}

	return view
}

func toPageInfoView(pi domain.PageInfo, path string, stateValues url.Values, scope string) PageInfoView {
	view := PageInfoView{
		HasPreviousPage: pi.HasPreviousPage,
		HasNextPage:     pi.HasNextPage,
		StartCursor:     query.EncodeCursor(scope, pi.StartCursor),
		EndCursor:       query.EncodeCursor(scope, pi.EndCursor),
	}
	if pi.HasNextPage && view.EndCursor != "" {
		view.NextURL = pageURL(path, stateValues, query.ParamEndCursor, view.EndCursor)
	}
	if pi.HasPreviousPage && view.StartCursor != "" {
		view.PreviousURL = pageURL(path, stateValues, query.ParamStartCursor, view.StartCursor)
	}
	return view
}

func pageURL(path string, stateValues url.Values, key, token string) string {
	v := url.Values{}
	for k, vals := range stateValues {
		v[k] = vals
	}
	v.Set(key, token)
	return path + "?" + v.Encode()
}

// UniqueValues collects distinct non-empty values in first-seen order
func UniqueValues(products []domain.Product, field func(*domain.Product) string) []string {
	seen := make(map[string]bool)
	values := []string{}
	for i := range products {
		v := field(&products[i])
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}

// ToFacets derives filter choices from the given page of products only
func ToFacets(products []domain.Product) Facets {
	f := Facets{
		Scope:        FacetScopeCurrentPage,
		Vendors:      UniqueValues(products, func(p *domain.Product) string { return p.Vendor }),
		ProductTypes: UniqueValues(products, func(p *domain.Product) string { return p.ProductType }),
	}

	if len(products) == 0 {
		return f
	}
	lo, hi := products[0].Price.Amount, products[0].Price.Amount
	for _, p := range products[1:] {
		lo = decimal.Min(lo, p.Price.Amount)
		hi = decimal.Max(hi, p.Price.Amount)
	}
	f.PriceRange = &PriceRangeView{
		Min: lo.Floor().IntPart(),
		Max: hi.Ceil().IntPart(),
	}
	return f
}

// Package storefronttest provides an in-memory domain.Storefront for tests.
package storefronttest

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Fake serves a fixed catalog and applies filters, sorting and cursor pagination
// the way the upstream does. Cursors are product handles.
type Fake struct {
	mu sync.Mutex

	Collections             map[string]domain.Collection
	Products                map[string]domain.Product
	RecommendationsByHandle map[string][]domain.Product

	// Err fails every call; RecommendationsErr fails only recommendations
	Err                error
	RecommendationsErr error

	queries []domain.CollectionQuery
}

var _ domain.Storefront = (*Fake)(nil)

// NewFake creates an empty catalog
func NewFake() *Fake {
	return &Fake{
		Collections:             make(map[string]domain.Collection),
		Products:                make(map[string]domain.Product),
		RecommendationsByHandle: make(map[string][]domain.Product),
	}
}

// AddCollection registers a collection whose products are also reachable by handle
func (f *Fake) AddCollection(c domain.Collection) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Collections[c.Handle] = c
	for _, p := range c.Products {
		if _, ok := f.Products[p.Handle]; !ok {
			f.Products[p.Handle] = p
		}
	}
}

// AddProduct registers a product
func (f *Fake) AddProduct(p domain.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Products[p.Handle] = p
}

// Queries returns the collection queries received so far
func (f *Fake) Queries() []domain.CollectionQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.queries)
}

func (f *Fake) Collection(ctx context.Context, q domain.CollectionQuery) (*domain.Collection, error) {
	if err := f.check(ctx); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)

	c, ok := f.Collections[q.Handle]
	if !ok {
		return nil, domain.ErrNotFound
	}

	products := make([]domain.Product, 0, len(c.Products))
	for _, p := range c.Products {
		if matches(p, q.Filters) {
			products = append(products, p)
		}
	}
	sortProducts(products, q.SortKey, q.Reverse)

	page, info := paginate(products, q)
	c.Products = page
	c.PageInfo = info
	return &c, nil
}

func (f *Fake) Product(ctx context.Context, handle string) (*domain.Product, error) {
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.Products[handle]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (f *Fake) Recommendations(ctx context.Context, handle string) ([]domain.Product, error) {
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	if f.RecommendationsErr != nil {
		return nil, f.RecommendationsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.RecommendationsByHandle[handle]), nil
}

func (f *Fake) FeaturedCollections(ctx context.Context, first int) ([]domain.Collection, error) {
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.Collection, 0, len(f.Collections))
	for _, c := range f.Collections {
		c.Products = nil
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b domain.Collection) int { return strings.Compare(a.Handle, b.Handle) })
	return out[:min(first, len(out))], nil
}

func (f *Fake) FeaturedProducts(ctx context.Context, first int) ([]domain.Product, error) {
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.Product, 0, len(f.Products))
	for _, p := range f.Products {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b domain.Product) int { return strings.Compare(a.Handle, b.Handle) })
	return out[:min(first, len(out))], nil
}

func (f *Fake) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.Err
}

func matches(p domain.Product, filters []domain.ProductFilter) bool {
	for _, pf := range filters {
		switch {
		case pf.Price != nil:
			if pf.Price.Min != nil && p.Price.Amount.LessThan(decimal.NewFromFloat(*pf.Price.Min)) {
				return false
			}
			if pf.Price.Max != nil && p.Price.Amount.GreaterThan(decimal.NewFromFloat(*pf.Price.Max)) {
				return false
			}
		case pf.ProductType != "":
			if p.ProductType != pf.ProductType {
				return false
			}
		case pf.ProductVendor != "":
			if p.Vendor != pf.ProductVendor {
				return false
			}
		case pf.Available != nil:
			if p.AvailableForSale != *pf.Available {
				return false
			}
		}
	}
	return true
}

func sortProducts(products []domain.Product, key string, reverse bool) {
	switch key {
	case "PRICE":
		slices.SortStableFunc(products, func(a, b domain.Product) int { return a.Price.Amount.Cmp(b.Price.Amount) })
	case "TITLE":
		slices.SortStableFunc(products, func(a, b domain.Product) int { return strings.Compare(a.Title, b.Title) })
	}
	if reverse {
		slices.Reverse(products)
	}
}

func paginate(products []domain.Product, q domain.CollectionQuery) ([]domain.Product, domain.PageInfo) {
	index := func(cursor string) int {
		return slices.IndexFunc(products, func(p domain.Product) bool { return p.Handle == cursor })
	}

	start, end := 0, len(products)
	switch {
	case q.Last > 0:
		if q.Before != "" {
			if i := index(q.Before); i >= 0 {
				end = i
			}
		}
		start = max(0, end-q.Last)
	default:
		if q.After != "" {
			if i := index(q.After); i >= 0 {
				start = i + 1
			}
		}
		if q.First > 0 {
			end = min(len(products), start+q.First)
		}
	}

	page := slices.Clone(products[start:end])
	info := domain.PageInfo{
		HasPreviousPage: start > 0,
		HasNextPage:     end < len(products),
	}
	if len(page) > 0 {
		info.StartCursor = page[0].Handle
		info.EndCursor = page[len(page)-1].Handle
	}
	return page, info
}

package domain

// PageInfo is the upstream cursor window of a connection
type PageInfo struct {
	HasPreviousPage bool
	HasNextPage     bool
	StartCursor     string
	EndCursor       string
}

// Collection represents a curated group of products, holding a single page of them
type Collection struct {
	ID          string
	Handle      string
	Title       string
	Description string
	Image       *Image
	SEO         SEO

	Products []Product
	PageInfo PageInfo
}

package dto

import "github.com/mrops-br/storefront-api/internal/domain"

// CollectionCard represents a collection teaser
type CollectionCard struct {
	ID          string     `json:"id"`
	Handle      string     `json:"handle"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	Image       *ImageView `json:"image,omitempty"`
}

// HomeView represents the home page view model
type HomeView struct {
	FeaturedCollections []CollectionCard `json:"featuredCollections"`
	FeaturedProducts    []ProductCard    `json:"featuredProducts"`
}

// ToCollectionCards converts collections into teasers
func ToCollectionCards(collections []domain.Collection) []CollectionCard {
	cards := make([]CollectionCard, len(collections))
	for i, c := range collections {
		cards[i] = CollectionCard{
			ID:          c.ID,
			Handle:      c.Handle,
			Title:       c.Title,
			Description: c.Description,
			URL:         CollectionURL(c.Handle),
			Image:       ToImageView(c.Image),
		}
	}
	return cards
}

// ToHomeView assembles the home page
func ToHomeView(collections []domain.Collection, products []domain.Product) *HomeView {
	return &HomeView{
		FeaturedCollections: ToCollectionCards(collections),
		FeaturedProducts:    ToProductCards(products),
	}
}

package dto

import "github.com/mrops-br/storefront-api/internal/domain"

// ImageView represents an image reference
type ImageView struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

// ToImageView converts a domain image; nil stays nil
func ToImageView(img *domain.Image) *ImageView {
	if img == nil || img.URL == "" {
		return nil
	}
	return &ImageView{
		URL:     img.URL,
		AltText: img.AltText,
		Width:   img.Width,
		Height:  img.Height,
	}
}

// PrimaryImage is the first image, or the featured image when the list is empty
func PrimaryImage(images []domain.Image, featured *domain.Image) *ImageView {
	if len(images) > 0 {
		return ToImageView(&images[0])
	}
	return ToImageView(featured)
}

// SecondaryImage is the second image when present. It is never substituted.
func SecondaryImage(images []domain.Image) *ImageView {
	if len(images) < 2 {
		return nil
	}
	return ToImageView(&images[1])
}

func toImageViews(images []domain.Image) []ImageView {
	views := make([]ImageView, 0, len(images))
	for i := range images {
		if v := ToImageView(&images[i]); v != nil {
			views = append(views, *v)
		}
	}
	return views
}

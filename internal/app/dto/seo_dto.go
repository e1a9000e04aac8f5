package dto

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const metaDescriptionLength = 155

// SEOView holds page metadata for the view layer
type SEOView struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Canonical   string         `json:"canonical"`
	Image       string         `json:"image,omitempty"`
	JSONLD      map[string]any `json:"jsonLd,omitempty"`
}

// PlainText extracts whitespace-normalized text from an HTML fragment
func PlainText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Truncate cuts s to at most n runes
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// metaDescription prefers the SEO override, then the plain description, then text from HTML
func metaDescription(seoDescription, description, descriptionHTML string) string {
	switch {
	case seoDescription != "":
		return seoDescription
	case description != "":
		return Truncate(description, metaDescriptionLength)
	default:
		return Truncate(PlainText(descriptionHTML), metaDescriptionLength)
	}
}

func canonicalURL(storeURL, path string) string {
	return strings.TrimRight(storeURL, "/") + path
}

package links

import (
	"net/url"

	"BasketNa/internal/domain/models"
)

// Builder renders retailer search URLs for product names.
type Builder struct{}

func New() *Builder { return &Builder{} }

// Build returns the search URL for a product at a retailer. Unknown
// retailers fall back to a Google query.
func (b *Builder) Build(productName string, retailer models.Retailer) string {
	q := url.QueryEscape(productName)
	switch retailer {
	case models.RetailerAmazon:
		return "https://www.amazon.in/s?k=" + q
	case models.RetailerFlipkart:
		return "https://www.flipkart.com/search?q=" + q
	case models.RetailerRelianceDigital:
		return "https://www.reliancedigital.in/search?q=" + q
	case models.RetailerCroma:
		return "https://www.croma.com/search/?text=" + q
	default:
		return "https://www.google.com/search?q=" + q + "+price"
	}
}

// All returns links for every known retailer.
func (b *Builder) All(productName string) map[models.Retailer]string {
	out := make(map[models.Retailer]string, len(models.KnownRetailers()))
	for _, r := range models.KnownRetailers() {
		out[r] = b.Build(productName, r)
	}
	return out
}

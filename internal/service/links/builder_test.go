package links

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"BasketNa/internal/domain/models"
)

func TestBuildAmazonEncodesSpaces(t *testing.T) {
	b := New()
	got := b.Build("iPhone 16", models.RetailerAmazon)
	assert.True(t, strings.HasPrefix(got, "https://www.amazon.in/s?k="))
	assert.Contains(t, got, "iPhone+16")
}

func TestBuildKnownRetailers(t *testing.T) {
	b := New()
	cases := map[models.Retailer]string{
		models.RetailerAmazon:          "amazon.in",
		models.RetailerFlipkart:        "flipkart.com",
		models.RetailerRelianceDigital: "reliancedigital.in",
		models.RetailerCroma:           "croma.com",
	}
	for retailer, host := range cases {
		got := b.Build("Sony WH-1000XM5", retailer)
		assert.Contains(t, got, host, "retailer %s", retailer)
	}
}

func TestBuildUnknownRetailerFallsBackToGoogle(t *testing.T) {
	b := New()
	got := b.Build("MacBook Air M3", models.Retailer("ShopClues"))
	assert.Contains(t, got, "google.com/search")
	assert.True(t, strings.HasSuffix(got, "+price"))
}

func TestAllCoversEveryRetailer(t *testing.T) {
	b := New()
	all := b.All("Pixel 9")
	assert.Len(t, all, len(models.KnownRetailers()))
	for _, r := range models.KnownRetailers() {
		assert.NotEmpty(t, all[r])
	}
}

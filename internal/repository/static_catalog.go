package repository

import (
	"sort"
	"strings"

	"BasketNa/internal/domain/models"
	"BasketNa/internal/domain/repository"
)

// StaticCatalog serves the seeded product list. Prices are in INR.
type StaticCatalog struct {
	byID  map[string]models.Product
	items []models.Product
}

func NewStaticCatalog() repository.Catalog {
	return NewStaticCatalogWith(defaultProducts)
}

// NewStaticCatalogWith builds a catalog from an explicit product list,
// used by tests and synthetic backfills.
func NewStaticCatalogWith(products []models.Product) repository.Catalog {
	c := &StaticCatalog{byID: make(map[string]models.Product, len(products))}
	c.items = make([]models.Product, len(products))
	copy(c.items, products)
	sort.Slice(c.items, func(i, j int) bool { return c.items[i].ID < c.items[j].ID })
	for _, p := range c.items {
		c.byID[p.ID] = p
	}
	return c
}

func (c *StaticCatalog) Get(productID string) (models.Product, bool) {
	p, ok := c.byID[productID]
	return p, ok
}

func (c *StaticCatalog) List() []models.Product {
	out := make([]models.Product, len(c.items))
	copy(out, c.items)
	return out
}

// Search matches case-insensitively on product name and category.
func (c *StaticCatalog) Search(query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []models.Product
	for _, p := range c.items {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}

func (c *StaticCatalog) ByCategory(category string) []models.Product {
	var out []models.Product
	for _, p := range c.items {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

var defaultProducts = []models.Product{
	{ID: "P001", Name: "iPhone 16", Category: "Smartphones", BasePrice: 79900, Rating: 4.6, Description: "Apple iPhone 16, 128GB"},
	{ID: "P002", Name: "Samsung Galaxy S24 Ultra", Category: "Smartphones", BasePrice: 129999, Rating: 4.5, Description: "Samsung flagship, 256GB"},
	{ID: "P003", Name: "OnePlus 12", Category: "Smartphones", BasePrice: 64999, Rating: 4.3, Description: "OnePlus 12, 256GB"},
	{ID: "P004", Name: "Google Pixel 9", Category: "Smartphones", BasePrice: 79999, Rating: 4.4, Description: "Google Pixel 9, 128GB"},
	{ID: "P005", Name: "MacBook Air M3", Category: "Laptops", BasePrice: 114900, Rating: 4.7, Description: "Apple MacBook Air 13-inch, M3"},
	{ID: "P006", Name: "Dell XPS 13", Category: "Laptops", BasePrice: 99990, Rating: 4.2, Description: "Dell XPS 13, Core Ultra 7"},
	{ID: "P007", Name: "Lenovo ThinkPad X1 Carbon", Category: "Laptops", BasePrice: 154990, Rating: 4.4, Description: "ThinkPad X1 Carbon Gen 12"},
	{ID: "P008", Name: "Sony WH-1000XM5", Category: "Audio", BasePrice: 29990, Rating: 4.6, Description: "Sony wireless noise-cancelling headphones"},
	{ID: "P009", Name: "Apple AirPods Pro 2", Category: "Audio", BasePrice: 24900, Rating: 4.5, Description: "AirPods Pro with USB-C"},
	{ID: "P010", Name: "JBL Flip 6", Category: "Audio", BasePrice: 9999, Rating: 4.2, Description: "JBL portable Bluetooth speaker"},
	{ID: "P011", Name: "iPad Pro 11", Category: "Tablets", BasePrice: 99900, Rating: 4.6, Description: "Apple iPad Pro 11-inch, M4"},
	{ID: "P012", Name: "Samsung Galaxy Tab S9", Category: "Tablets", BasePrice: 72999, Rating: 4.3, Description: "Samsung Galaxy Tab S9, 128GB"},
	{ID: "P013", Name: "Samsung 55 QLED TV", Category: "Televisions", BasePrice: 89990, Rating: 4.3, Description: "Samsung 55-inch QLED 4K"},
	{ID: "P014", Name: "LG C4 OLED 48", Category: "Televisions", BasePrice: 119990, Rating: 4.5, Description: "LG 48-inch OLED evo"},
	{ID: "P015", Name: "Apple Watch Series 10", Category: "Wearables", BasePrice: 46900, Rating: 4.4, Description: "Apple Watch Series 10, GPS"},
	{ID: "P016", Name: "Samsung Galaxy Watch 7", Category: "Wearables", BasePrice: 32999, Rating: 4.1, Description: "Samsung Galaxy Watch 7, 44mm"},
	{ID: "P017", Name: "Canon EOS R50", Category: "Cameras", BasePrice: 75990, Rating: 4.4, Description: "Canon mirrorless with 18-45mm kit lens"},
	{ID: "P018", Name: "PlayStation 5 Slim", Category: "Gaming", BasePrice: 54990, Rating: 4.7, Description: "Sony PS5 Slim, disc edition"},
	{ID: "P019", Name: "Xbox Series X", Category: "Gaming", BasePrice: 55990, Rating: 4.5, Description: "Microsoft Xbox Series X, 1TB"},
	{ID: "P020", Name: "Dyson V12 Detect Slim", Category: "Appliances", BasePrice: 58900, Rating: 4.3, Description: "Dyson cordless vacuum"},
}

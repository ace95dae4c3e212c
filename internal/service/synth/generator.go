package synth

import (
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"BasketNa/internal/domain/models"
)

// Per-retailer discount factors applied to the catalog base price.
var discountFactors = map[models.Retailer]float64{
	models.RetailerAmazon:          0.95,
	models.RetailerFlipkart:        0.93,
	models.RetailerRelianceDigital: 0.97,
	models.RetailerCroma:           0.96,
}

const (
	seasonalAmplitude = 0.05
	noiseAmplitude    = 0.02
	// Day-over-day move is capped at this fraction of the previous price.
	maxDailyDelta = 0.02
	// Prices never fall below this fraction of the base price.
	floorFraction = 0.80
)

// Generator produces deterministic synthetic daily price series. The
// same seed always yields the same series for a (product, retailer).
type Generator struct {
	seed int64
}

func NewGenerator(seed int64) *Generator {
	return &Generator{seed: seed}
}

// Series generates days daily prices ending at endDay inclusive,
// ordered by day ascending.
func (g *Generator) Series(product models.Product, retailer models.Retailer, endDay time.Time, days int) []models.PricePoint {
	if days <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(g.subSeed(product.ID, retailer)))
	base := product.BasePrice * discountFactor(retailer)
	floor := product.BasePrice * floorFraction

	out := make([]models.PricePoint, 0, days)
	prev := base
	for i := 0; i < days; i++ {
		season := 1 + seasonalAmplitude*math.Sin(2*math.Pi*float64(i)/float64(days))
		noise := 1 + (rng.Float64()*2-1)*noiseAmplitude
		price := base * season * noise

		if i > 0 {
			if max := prev * (1 + maxDailyDelta); price > max {
				price = max
			}
			if min := prev * (1 - maxDailyDelta); price < min {
				price = min
			}
		}
		if price < floor {
			price = floor
		}
		price = math.Round(price*100) / 100
		prev = price

		out = append(out, models.PricePoint{
			Day:      endDay.AddDate(0, 0, i-days+1),
			Retailer: retailer,
			Price:    price,
		})
	}
	return out
}

// Next advances a price one step using the same noise and delta rules,
// for live tick emission.
func (g *Generator) Next(rng *rand.Rand, product models.Product, retailer models.Retailer, prev float64) float64 {
	base := product.BasePrice * discountFactor(retailer)
	if prev <= 0 {
		prev = base
	}
	noise := 1 + (rng.Float64()*2-1)*noiseAmplitude
	price := prev * noise

	if max := prev * (1 + maxDailyDelta); price > max {
		price = max
	}
	if min := prev * (1 - maxDailyDelta); price < min {
		price = min
	}
	if floor := product.BasePrice * floorFraction; price < floor {
		price = floor
	}
	return math.Round(price*100) / 100
}

// Seed exposes the generator seed for derived RNGs.
func (g *Generator) Seed() int64 { return g.seed }

func (g *Generator) subSeed(productID string, retailer models.Retailer) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(productID))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(retailer))
	return g.seed ^ int64(h.Sum64())
}

func discountFactor(r models.Retailer) float64 {
	if f, ok := discountFactors[r]; ok {
		return f
	}
	return 1
}

package catalog

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"sync"

	"ezypc-storefront/internal/models"
)

var priceHistoryMonths = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}

type PricePoint struct {
	Month string `json:"month"`
	Price int    `json:"price"`
}

// AverageRating is the mean review rating rounded to one decimal, or 0
// without reviews.
func AverageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	var total float64
	for _, r := range reviews {
		total += r.Rating
	}
	return math.Round(total/float64(len(reviews))*10) / 10
}

// SortedPurchaseOptions returns a copy ordered by ascending price.
func SortedPurchaseOptions(options []models.PurchaseOption) []models.PurchaseOption {
	sorted := make([]models.PurchaseOption, len(options))
	copy(sorted, options)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price < sorted[j].Price
	})
	return sorted
}

func SimilarExcludeTitles(product models.Product, loaded []models.Product) []string {
	titles := make([]string, 0, len(loaded)+1)
	titles = append(titles, product.Title)
	for _, p := range loaded {
		titles = append(titles, p.Title)
	}
	return titles
}

// PriceHistory simulates six months of prices. The series starts within
// 10% of basePrice, drifts up to 5% per month and always ends on basePrice.
func PriceHistory(basePrice int, rng *rand.Rand) []PricePoint {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	points := make([]PricePoint, 0, len(priceHistoryMonths))
	current := float64(basePrice) * (1 + (rng.Float64()-0.5)*0.2)
	for _, month := range priceHistoryMonths {
		points = append(points, PricePoint{Month: month, Price: int(math.Round(current))})
		current *= 1 + (rng.Float64()-0.5)*0.1
	}
	points[len(points)-1].Price = basePrice

	return points
}

type SimilarSource interface {
	GetSimilarProducts(ctx context.Context, product models.Product, excludeTitles []string) (*models.Batch, error)
}

// SimilarFeed pages through similar products for one reference product,
// excluding everything already shown. It stops after the first empty,
// discarded or failed fetch.
type SimilarFeed struct {
	mu      sync.Mutex
	source  SimilarSource
	product models.Product
	loaded  []models.Product
	hasMore bool
}

func NewSimilarFeed(source SimilarSource, product models.Product) *SimilarFeed {
	return &SimilarFeed{
		source:  source,
		product: product,
		hasMore: true,
	}
}

// Next fetches the following page and returns only the new products.
func (f *SimilarFeed) Next(ctx context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.hasMore {
		return nil, nil
	}

	batch, err := f.source.GetSimilarProducts(ctx, f.product, SimilarExcludeTitles(f.product, f.loaded))
	if err != nil {
		f.hasMore = false
		return nil, err
	}
	if batch == nil || len(batch.Recommendations) == 0 {
		f.hasMore = false
		return nil, nil
	}

	f.loaded = append(f.loaded, batch.Recommendations...)
	return batch.Recommendations, nil
}

func (f *SimilarFeed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

func (f *SimilarFeed) Loaded() []models.Product {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Product, len(f.loaded))
	copy(out, f.loaded)
	return out
}

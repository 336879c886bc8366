// internal/workers/recommendation/similar-products/models.go
package similarproducts

import "ezypc-storefront/internal/models"

// Input names the reference product. When ExcludeTitles is empty only the
// reference title is excluded.
type Input struct {
	Product       models.Product `json:"product"`
	ExcludeTitles []string       `json:"excludeTitles"`
}

type Output struct {
	Found           bool             `json:"found"`
	Recommendations []models.Product `json:"recommendations"`
	HasMore         bool             `json:"hasMore"`
}

// internal/workers/recommendation/popular-products/models.go
package popularproducts

import "ezypc-storefront/internal/models"

// Input carries no required variables. Type narrows the listing to one
// product type when set.
type Input struct {
	Type string `json:"type,omitempty"`
}

type Output struct {
	Found           bool             `json:"found"`
	Recommendations []models.Product `json:"recommendations"`
	Count           int              `json:"count"`
	Filters         []string         `json:"filters,omitempty"`
}

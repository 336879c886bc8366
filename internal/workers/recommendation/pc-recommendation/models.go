// internal/workers/recommendation/pc-recommendation/models.go
package pcrecommendation

import "ezypc-storefront/internal/models"

type Input struct {
	UseCase models.UseCase  `json:"useCase"`
	Answers []models.Answer `json:"answers"`
}

// Output lists the recommendations tagged for the customer. BestMatch is the
// first product the model flagged, or nil.
type Output struct {
	Found           bool             `json:"found"`
	Recommendations []models.Product `json:"recommendations"`
	BestMatch       *models.Product  `json:"bestMatch,omitempty"`
}
